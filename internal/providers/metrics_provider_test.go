package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"tankwatch/internal/models"
	"tankwatch/internal/structures"
)

// --- minimal mock for SampleServiceInterface ---

type metricsTestService struct{}

func (m *metricsTestService) AddBatch(_ *models.SampleBatch)             {}
func (m *metricsTestService) GetBufferSize() int                         { return 5 }
func (m *metricsTestService) SwitchBuffer()                              {}
func (m *metricsTestService) GetNotActiveBuffer() []*models.SampleBatch  { return nil }
func (m *metricsTestService) ClearNotActiveBuffer()                      {}
func (m *metricsTestService) Store() *models.WeekStore                   { return models.NewWeekStore() }
func (m *metricsTestService) Coverage() *models.CoverageIndex            { return models.NewCoverageIndex() }
func (m *metricsTestService) GetRegions() []string                       { return []string{"fujairah_uae"} }
func (m *metricsTestService) TankCount(_ string) int                     { return 0 }
func (m *metricsTestService) GetSnapshot() (*models.Storage, error)      { return nil, nil }
func (m *metricsTestService) PutSnapshot(_ *models.Storage) error        { return nil }

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/tanks", 200)
	m.ObserveRequestDuration("/tanks", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncOverpassRequests("https://overpass-api.de/api/interpreter", "ok")
	m.IncSamples("admitted", 3)
	m.ObserveAggregationDuration(time.Millisecond)
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetTanksTotal("fujairah_uae", 10)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})

	// These should not panic
	m.IncRequestsTotal("/tanks", 200)
	m.IncRequestsTotal("/tanks", 404)
	m.ObserveRequestDuration("/tanks", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncOverpassRequests("https://overpass-api.de/api/interpreter", "error")
	m.IncSamples("masked", 2)
	m.ObserveAggregationDuration(10 * time.Millisecond)
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetTanksTotal("fujairah_uae", 42)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
