package providers

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ihsearch/internal/structures"
)

func withTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevRegisterer, prevGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevRegisterer
		prometheus.DefaultGatherer = prevGatherer
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits("metrics")
	m.IncCacheMisses("metrics")
	m.ObserveStoreOperation("influencer_scan", time.Millisecond, nil)
	m.SetRecordsTotal("influencers", 10)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	withTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Records(t *testing.T) {
	withTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}).(*MetricsProvider)

	m.IncRequestsTotal("/searchByName", 200)
	m.IncRequestsTotal("/searchByName", 201)
	m.IncRequestsTotal("/searchByName", 404)
	m.ObserveRequestDuration("/searchByName", 5*time.Millisecond)
	m.IncCacheHits("metrics")
	m.IncCacheMisses("metrics")
	m.ObserveStoreOperation("metrics_query_followers", 3*time.Millisecond, nil)
	m.ObserveStoreOperation("metrics_query_followers", 3*time.Millisecond, errors.New("throttled"))
	m.SetRecordsTotal("posts", 42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/searchByName", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/searchByName", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("metrics")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeErrors.WithLabelValues("metrics_query_followers")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.recordsTotal.WithLabelValues("posts")))
	require.Equal(t, 1, testutil.CollectAndCount(m.storeDuration))
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
