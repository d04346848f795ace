package internal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankwatch/internal/controllers"
	"tankwatch/internal/services"
	"tankwatch/internal/structures"
	"tankwatch/internal/testutil"
)

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}

func routesTestController() *controllers.ApiController {
	return controllers.NewApiController(&testutil.MockLogger{}, services.NewSampleService(), &routeTestCache{})
}

func TestInitRoutes_RegistersSixRoutes(t *testing.T) {
	conf := &structures.Config{
		Composite: structures.CompositeConfig{Interval: time.Hour},
	}

	router := InitRoutes(routesTestController(), conf)
	routes := router.GetRoutes()

	require.Len(t, routes, 6)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/samples")
	assert.Contains(t, urls, "/tanks")
	assert.Contains(t, urls, "/weeks")
	assert.Contains(t, urls, "/tankweeks")
	assert.Contains(t, urls, "/coverage")
	assert.Contains(t, urls, "/regions")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	conf := &structures.Config{
		Composite: structures.CompositeConfig{Interval: time.Hour},
	}

	router := InitRoutes(routesTestController(), conf)

	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}

	// GET on the ingest route is rejected
	req := httptest.NewRequest(http.MethodGet, "/samples", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST on a query route is rejected
	req = httptest.NewRequest(http.MethodPost, "/weeks", strings.NewReader("{}"))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// Correct methods pass through
	body := `{"region": "a", "scene_time": "2024-01-05T10:00:00Z", "rows": []}`
	req = httptest.NewRequest(http.MethodPost, "/samples", strings.NewReader(body))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/weeks", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
