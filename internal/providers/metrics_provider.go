package providers

import (
	"time"

	"tankwatch/internal/services"
	"tankwatch/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncOverpassRequests(mirror string, outcome string)
	IncSamples(outcome string, count int)
	ObserveAggregationDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	SetTanksTotal(region string, count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	overpassRequests    *prometheus.CounterVec
	samplesTotal        *prometheus.CounterVec
	aggregationDuration prometheus.Histogram
	persistenceDuration prometheus.Histogram
	tanksTotal          *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncOverpassRequests(mirror string, outcome string) {
	m.overpassRequests.WithLabelValues(mirror, outcome).Inc()
}

func (m *MetricsProvider) IncSamples(outcome string, count int) {
	m.samplesTotal.WithLabelValues(outcome).Add(float64(count))
}

func (m *MetricsProvider) ObserveAggregationDuration(duration time.Duration) {
	m.aggregationDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetTanksTotal(region string, count int) {
	m.tanksTotal.WithLabelValues(region).Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.SampleServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tankwatch_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tankwatch_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tankwatch_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tankwatch_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		overpassRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tankwatch_overpass_requests_total",
			Help: "Total number of Overpass API requests by mirror and outcome",
		}, []string{"mirror", "outcome"}),

		samplesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tankwatch_samples_total",
			Help: "Total number of ingested scene samples by admission outcome",
		}, []string{"outcome"}),

		aggregationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tankwatch_aggregation_duration_seconds",
			Help:    "Duration of weekly aggregation runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tankwatch_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		tanksTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tankwatch_tanks_total",
			Help: "Number of tracked tanks per region",
		}, []string{"region"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tankwatch_buffer_size",
		Help: "Current number of scene samples in the active buffer",
	}, func() float64 {
		return float64(service.GetBufferSize())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tankwatch_regions_total",
		Help: "Total number of regions with data",
	}, func() float64 {
		return float64(len(service.GetRegions()))
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncOverpassRequests(_ string, _ string)           {}
func (n *noopMetrics) IncSamples(_ string, _ int)                       {}
func (n *noopMetrics) ObserveAggregationDuration(_ time.Duration)       {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetTanksTotal(_ string, _ int)                    {}
