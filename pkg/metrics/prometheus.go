// Package metrics provides Prometheus metrics for the Titanic services.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the Titanic services.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset metrics
	passengersLoaded    prometheus.Gauge
	datasetLoadFailures prometheus.Counter
	datasetLoadDuration prometheus.Histogram
	queryResultSize     *prometheus.HistogramVec
	lookupMisses        prometheus.Counter

	// Scoring metrics
	predictions        *prometheus.CounterVec
	predictionScore    prometheus.Histogram
	validationFailures *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         prometheus.Counter
	panicsRecovered     prometheus.Counter

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	uptimeSeconds        prometheus.Gauge
}

// Global metrics manager and the registry it registers on.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // metrics registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry, which GetRegistry then returns. Call it at startup before any
// handler captures the registry.
func Configure(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry.Store(registry)
	globalManager.Store(m)
	return m
}

func global() *Manager { return globalManager.Load() }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "titanic",
		subsystem:        "api",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // metric declarations
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.passengersLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "passengers_loaded",
		Help:        "Number of passenger records held by the repository",
		ConstLabels: constLabels,
	})

	m.datasetLoadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_failures_total",
		Help:        "Dataset loads that fell back to an empty repository",
		ConstLabels: constLabels,
	})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_duration_milliseconds",
		Help:        "Time spent reading and indexing the dataset",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.queryResultSize = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "query_result_size",
			Help:        "Number of passengers returned per query",
			Buckets:     []float64{0, 1, 5, 10, 20, 50, 100, 250, 500, 1000},
			ConstLabels: constLabels,
		},
		[]string{"query"},
	)

	m.lookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lookup_misses_total",
		Help:        "Passenger lookups by id that found nothing",
		ConstLabels: constLabels,
	})

	m.predictions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "predictions_total",
			Help:        "Survival predictions served, by outcome",
			ConstLabels: constLabels,
		},
		[]string{"survived"},
	)

	m.predictionScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "prediction_score",
		Help:        "Distribution of heuristic scores",
		Buckets:     prometheus.LinearBuckets(-4, 1, 15),
		ConstLabels: constLabels,
	})

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "validation_failures_total",
			Help:        "Prediction requests rejected for a missing or malformed field",
			ConstLabels: constLabels,
		},
		[]string{"field"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rate_limited_total",
		Help:        "Requests rejected by the rate limiter",
		ConstLabels: constLabels,
	})

	m.panicsRecovered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "panics_recovered_total",
		Help:        "Handler panics converted to 500 responses",
		ConstLabels: constLabels,
	})

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Errors by type and severity",
			ConstLabels: constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Errors by endpoint, method and type",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Allocated heap bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.uptimeSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "uptime_seconds",
		Help:        "Seconds since the process started serving",
		ConstLabels: constLabels,
	})
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge-style system metrics should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// UpdatePassengersLoaded sets the repository size.
func UpdatePassengersLoaded(count int) {
	if m := global(); m.enabled {
		m.passengersLoaded.Set(float64(count))
	}
}

// RecordDatasetLoadFailure counts a dataset load that degraded to an empty repository.
func RecordDatasetLoadFailure() {
	if m := global(); m.enabled {
		m.datasetLoadFailures.Inc()
	}
}

// RecordDatasetLoadDuration records how long loading took in milliseconds.
func RecordDatasetLoadDuration(durationMs float64) {
	if m := global(); m.enabled {
		m.datasetLoadDuration.Observe(durationMs)
	}
}

// RecordQueryResultSize records how many passengers a query returned.
func RecordQueryResultSize(query string, size int) {
	if m := global(); m.enabled {
		m.queryResultSize.WithLabelValues(query).Observe(float64(size))
	}
}

// RecordLookupMiss counts a lookup by id that found nothing.
func RecordLookupMiss() {
	if m := global(); m.enabled {
		m.lookupMisses.Inc()
	}
}

// RecordPrediction records one scored prediction.
func RecordPrediction(survived bool, score int) {
	m := global()
	if !m.enabled {
		return
	}
	label := "false"
	if survived {
		label = "true"
	}
	m.predictions.WithLabelValues(label).Inc()
	m.predictionScore.Observe(float64(score))
}

// RecordValidationFailure counts a prediction request rejected because of field.
func RecordValidationFailure(field string) {
	if m := global(); m.enabled {
		m.validationFailures.WithLabelValues(field).Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := global(); m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m := global(); m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited() {
	if m := global(); m.enabled {
		m.rateLimited.Inc()
	}
}

// RecordPanicRecovered counts a recovered handler panic.
func RecordPanicRecovered() {
	if m := global(); m.enabled {
		m.panicsRecovered.Inc()
	}
}

// RecordErrorByType records errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	if m := global(); m.enabled {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m := global(); m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if m := global(); m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if m := global(); m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(started time.Time) {
	if m := global(); m.enabled {
		m.uptimeSeconds.Set(time.Since(started).Seconds())
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry.Load()
}

// DefaultRefreshInterval is the refresh interval of the global manager.
func DefaultRefreshInterval() time.Duration {
	return global().refreshInterval
}
