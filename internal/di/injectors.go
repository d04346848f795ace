//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"tankwatch/internal"
	"tankwatch/internal/controllers"
	"tankwatch/internal/providers"
	"tankwatch/internal/services"
	"tankwatch/internal/structures"
	"tankwatch/internal/weekly"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		services.NewSampleService,
		weekly.NewZstdCompressor,
		weekly.NewCalendar,
		weekly.NewAggregator,
		weekly.NewFileManager,
		weekly.NewColdStorageFromConfig,
		weekly.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
