package internal

import (
	"net/http"

	"tankwatch/internal/controllers"
	"tankwatch/internal/providers"
	"tankwatch/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/samples", http.HandlerFunc(apiController.ReceiveSamples))
	routers.Get("/tanks", http.HandlerFunc(apiController.GetTanks))
	routers.Get("/weeks", http.HandlerFunc(apiController.GetWeeks))
	routers.Get("/tankweeks", http.HandlerFunc(apiController.GetTankWeeks))
	routers.Get("/coverage", http.HandlerFunc(apiController.GetCoverage))
	routers.Get("/regions", http.HandlerFunc(apiController.GetRegions))
	return routers
}
