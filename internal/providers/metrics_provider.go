package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"ihsearch/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObserveStoreOperation(operation string, duration time.Duration, err error)
	SetRecordsTotal(table string, count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	recordsTotal    *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObserveStoreOperation(operation string, duration time.Duration, err error) {
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(operation).Inc()
	}
}

func (m *MetricsProvider) SetRecordsTotal(table string, count int) {
	m.recordsTotal.WithLabelValues(table).Set(float64(count))
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ihsearch_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ihsearch_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ihsearch_cache_hits_total",
			Help: "Total number of cache hits per key namespace",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ihsearch_cache_misses_total",
			Help: "Total number of cache misses per key namespace",
		}, []string{"namespace"}),

		storeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ihsearch_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		storeErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ihsearch_store_errors_total",
			Help: "Total number of failed store operations",
		}, []string{"operation"}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ihsearch_records_total",
			Help: "Number of records held per table by the memory backend",
		}, []string{"table"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                         {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)         {}
func (n *noopMetrics) IncCacheHits(_ string)                                    {}
func (n *noopMetrics) IncCacheMisses(_ string)                                  {}
func (n *noopMetrics) ObserveStoreOperation(_ string, _ time.Duration, _ error) {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                          {}
