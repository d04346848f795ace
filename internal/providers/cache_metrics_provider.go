package providers

import "tankwatch/internal/structures"

// MetricsCacheProvider counts hits and misses on the query-response
// cache backing the tank and week endpoints.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider wraps the freecache provider with the
// hit/miss counters. A disabled cache stays the bare noop provider, so
// the miss counter doesn't tick on every uncached query.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{inner: inner, metrics: metrics}
}
