package providers

import (
	"strings"

	"ihsearch/internal/structures"
)

// MetricsCacheProvider counts hits and misses of the wrapped cache, labelled
// by the key namespace ("metrics" for "metrics:i-1").
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func cacheNamespace(key string) string {
	ns, _, found := strings.Cut(key, ":")
	if !found || ns == "" {
		return "default"
	}
	return ns
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheNamespace(key))
	} else {
		c.metrics.IncCacheMisses(cacheNamespace(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider leaves a disabled cache unwrapped; it records no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
