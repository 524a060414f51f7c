// Package metrics provides Prometheus metrics for the FRISK decision service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the FRISK service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core business metrics
	predictionsRecorded prometheus.Counter
	duplicateIDs        prometheus.Counter
	validationFailures  *prometheus.CounterVec
	outcomesAttached    prometheus.Counter
	outcomesUnknownID   prometheus.Counter

	// Classifier metrics
	classifierLatency prometheus.Histogram
	classifierErrors  prometheus.Counter
	encodingErrors    prometheus.Counter

	// Store metrics
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec
	recordsTotal prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "frisk",
		subsystem:        "decisions",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// GetRegistry returns the registry backing the global manager, for serving
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictionsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_recorded_total",
		Help:      "Total number of predictions durably recorded",
	})

	m.duplicateIDs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_observation_ids_total",
		Help:      "Total number of inserts rejected for a reused observation id",
	})

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_failures_total",
			Help:      "Total number of rejected observations by failed check",
		},
		[]string{"check"},
	)

	m.outcomesAttached = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcomes_attached_total",
		Help:      "Total number of outcomes attached to recorded predictions",
	})

	m.outcomesUnknownID = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcomes_unknown_id_total",
		Help:      "Total number of outcome reports for unknown observation ids",
	})

	m.classifierLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "classifier_latency_milliseconds",
		Help:      "Histogram of classifier invocation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.classifierErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "classifier_errors_total",
		Help:      "Total number of classifier invocation failures",
	})

	m.encodingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feature_encoding_errors_total",
		Help:      "Total number of feature rows that failed manifest encoding",
	})

	m.storeLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_latency_milliseconds",
			Help:      "Prediction store operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)

	m.storeErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_errors_total",
			Help:      "Total number of prediction store failures by operation",
		},
		[]string{"operation"},
	)

	m.recordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_total",
		Help:      "Total number of prediction records in the store",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of error responses by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers delegating to the global manager.

// RecordPrediction counts a durably recorded prediction.
func RecordPrediction() {
	if globalManager.enabled {
		globalManager.predictionsRecorded.Inc()
	}
}

// RecordDuplicateID counts an insert rejected for a reused id.
func RecordDuplicateID() {
	if globalManager.enabled {
		globalManager.duplicateIDs.Inc()
	}
}

// RecordValidationFailure counts a rejected observation by check name.
func RecordValidationFailure(check string) {
	if globalManager.enabled {
		globalManager.validationFailures.WithLabelValues(check).Inc()
	}
}

// RecordOutcomeAttached counts a successfully attached outcome.
func RecordOutcomeAttached() {
	if globalManager.enabled {
		globalManager.outcomesAttached.Inc()
	}
}

// RecordOutcomeUnknownID counts an outcome report for an unknown id.
func RecordOutcomeUnknownID() {
	if globalManager.enabled {
		globalManager.outcomesUnknownID.Inc()
	}
}

// RecordClassifierLatency records one classifier invocation's latency.
func RecordClassifierLatency(ms float64) {
	if globalManager.enabled {
		globalManager.classifierLatency.Observe(ms)
	}
}

// RecordClassifierError counts a classifier invocation failure.
func RecordClassifierError() {
	if globalManager.enabled {
		globalManager.classifierErrors.Inc()
	}
}

// RecordEncodingError counts a feature row that failed manifest encoding.
func RecordEncodingError() {
	if globalManager.enabled {
		globalManager.encodingErrors.Inc()
	}
}

// RecordStoreLatency records one store operation's latency.
func RecordStoreLatency(operation string, ms float64) {
	if globalManager.enabled {
		globalManager.storeLatency.WithLabelValues(operation).Observe(ms)
	}
}

// RecordStoreError counts a store operation failure.
func RecordStoreError(operation string) {
	if globalManager.enabled {
		globalManager.storeErrors.WithLabelValues(operation).Inc()
	}
}

// UpdateRecordsTotal sets the stored-records gauge.
func UpdateRecordsTotal(n int) {
	if globalManager.enabled {
		globalManager.recordsTotal.Set(float64(n))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
	}
}

// RecordErrorByEndpoint counts one error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the allocated-memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(n))
	}
}
