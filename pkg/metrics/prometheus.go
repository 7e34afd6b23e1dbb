// Package metrics provides Prometheus metrics for the facesym core service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Assessment pipeline metrics
	assessmentsCompleted prometheus.Counter
	assessmentErrors     prometheus.Counter
	normalizationErrors  prometheus.Counter
	providerLatency      prometheus.Histogram

	// Recommendation metrics
	recommendationsServed prometheus.Counter
	recommendationsEmpty  prometheus.Counter

	// Credential cache metrics
	credentialCacheHits  prometheus.Counter
	credentialIssued     prometheus.Counter
	credentialFetchFails prometheus.Counter

	// Plan metrics
	plansGenerated      prometheus.Counter
	routinesCompleted   prometheus.Counter
	completionReplays   prometheus.Counter
	completionNotFound  prometheus.Counter

	// Repository metrics
	repositoryLatency *prometheus.HistogramVec
	repositoryErrors  prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByType     *prometheus.CounterVec
	errorsByEndpoint *prometheus.CounterVec
	errorLatency     *prometheus.HistogramVec

	// System metrics
	systemMemoryBytes prometheus.Gauge
	systemGoroutines  prometheus.Gauge
	systemGCPause     prometheus.Histogram
}

// Global metrics instance on a dedicated registry so the default
// registry's collectors never collide with ours.
var (
	customRegistry = prometheus.NewRegistry()
	globalManager  *Manager
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "facesym",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.assessmentsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_completed_total",
		Help:      "Total number of assessments that produced a score vector",
	})

	m.assessmentErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessment_errors_total",
		Help:      "Total number of assessments that failed at the scoring provider",
	})

	m.normalizationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "normalization_errors_total",
		Help:      "Total number of provider payloads rejected during normalization",
	})

	m.providerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_provider_latency_milliseconds",
		Help:      "Histogram of scoring provider round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recommendationsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Total number of recommendation rankings computed",
	})

	m.recommendationsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_empty_total",
		Help:      "Total number of rankings where every factor already met its goal",
	})

	m.credentialCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_cache_hits_total",
		Help:      "Total number of credential requests served from the persisted token",
	})

	m.credentialIssued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_issued_total",
		Help:      "Total number of tokens fetched from the external issuer",
	})

	m.credentialFetchFails = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_fetch_errors_total",
		Help:      "Total number of failed token issuance attempts",
	})

	m.plansGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plans_generated_total",
		Help:      "Total number of plans generated (including replacements)",
	})

	m.routinesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "routines_completed_total",
		Help:      "Total number of daily routines newly marked complete",
	})

	m.completionReplays = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completion_replays_total",
		Help:      "Total number of idempotent re-completions (already-completed entries)",
	})

	m.completionNotFound = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completion_not_found_total",
		Help:      "Total number of completion requests with no matching daily routine",
	})

	m.repositoryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "repository_op_latency_milliseconds",
			Help:      "Repository operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)

	m.repositoryErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_errors_total",
		Help:      "Total number of repository operation failures",
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

	m.errorsByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total errors by endpoint and method",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of requests that ended in an error",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPause = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of GC pause times in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Assessment pipeline.

func RecordAssessmentCompleted() {
	globalManager.assessmentsCompleted.Inc()
}

func RecordAssessmentError() {
	globalManager.assessmentErrors.Inc()
}

func RecordNormalizationError() {
	globalManager.normalizationErrors.Inc()
}

func RecordProviderLatency(latencyMs float64) {
	globalManager.providerLatency.Observe(latencyMs)
}

// Recommendations.

func RecordRecommendationServed(empty bool) {
	globalManager.recommendationsServed.Inc()
	if empty {
		globalManager.recommendationsEmpty.Inc()
	}
}

// Credential cache.

func RecordCredentialCacheHit() {
	globalManager.credentialCacheHits.Inc()
}

func RecordCredentialIssued() {
	globalManager.credentialIssued.Inc()
}

func RecordCredentialFetchError() {
	globalManager.credentialFetchFails.Inc()
}

// Plans.

func RecordPlanGenerated() {
	globalManager.plansGenerated.Inc()
}

func RecordRoutineCompleted() {
	globalManager.routinesCompleted.Inc()
}

func RecordCompletionReplay() {
	globalManager.completionReplays.Inc()
}

func RecordCompletionNotFound() {
	globalManager.completionNotFound.Inc()
}

// Repository.

func RecordRepositoryLatency(op string, latencyMs float64) {
	globalManager.repositoryLatency.WithLabelValues(op).Observe(latencyMs)
}

func RecordRepositoryError() {
	globalManager.repositoryErrors.Inc()
}

// HTTP.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Error tracking.

func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System.

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryBytes.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPause.Observe(pauseMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
