// Package metrics provides Prometheus metrics for the coinfront service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Outbound API calls issued through the shared client
	clientRequests        *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec
	clientErrors          *prometheus.CounterVec

	// Coin submissions
	submissions *prometheus.CounterVec

	// Router
	navigations *prometheus.CounterVec
	viewLoads   *prometheus.CounterVec

	// Inbound HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coinfront",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.clientRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_requests_total",
		Help:        "Outbound API requests by method, path and status code",
		ConstLabels: m.constLabels,
	}, []string{"method", "path", "status_code"})

	m.clientRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_request_duration_milliseconds",
		Help:        "Outbound API request latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"method", "path"})

	m.clientErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_errors_total",
		Help:        "Outbound API failures by kind (transport, status, encode)",
		ConstLabels: m.constLabels,
	}, []string{"method", "path", "kind"})

	m.submissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "coin_submissions_total",
		Help:        "Coin detail submissions by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.navigations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "router_navigations_total",
		Help:        "Router navigations by route name and outcome",
		ConstLabels: m.constLabels,
	}, []string{"route", "outcome"})

	m.viewLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "router_view_loads_total",
		Help:        "Deferred view loads by route name and outcome",
		ConstLabels: m.constLabels,
	}, []string{"route", "outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Inbound HTTP requests by endpoint, method and status code",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "Inbound HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordClientRequest records a completed outbound request.
func (m *Manager) RecordClientRequest(method, path, statusCode string, durationMs float64) {
	m.clientRequests.WithLabelValues(method, path, statusCode).Inc()
	m.clientRequestDuration.WithLabelValues(method, path).Observe(durationMs)
}

// RecordClientError records an outbound failure of the given kind.
func (m *Manager) RecordClientError(method, path, kind string) {
	m.clientErrors.WithLabelValues(method, path, kind).Inc()
}

// RecordSubmission records the outcome of a coin submission.
func (m *Manager) RecordSubmission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

// RecordNavigation records a router navigation.
func (m *Manager) RecordNavigation(route, outcome string) {
	m.navigations.WithLabelValues(route, outcome).Inc()
}

// RecordViewLoad records a deferred view load.
func (m *Manager) RecordViewLoad(route, outcome string) {
	m.viewLoads.WithLabelValues(route, outcome).Inc()
}

// RecordHTTPRequest records an inbound HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Default returns the process-wide manager bound to the custom registry.
func Default() *Manager {
	return globalManager
}

// RecordClientRequest records on the global manager.
func RecordClientRequest(method, path, statusCode string, durationMs float64) {
	globalManager.RecordClientRequest(method, path, statusCode, durationMs)
}

// RecordClientError records on the global manager.
func RecordClientError(method, path, kind string) {
	globalManager.RecordClientError(method, path, kind)
}

// RecordSubmission records on the global manager.
func RecordSubmission(outcome string) {
	globalManager.RecordSubmission(outcome)
}

// RecordNavigation records on the global manager.
func RecordNavigation(route, outcome string) {
	globalManager.RecordNavigation(route, outcome)
}

// RecordViewLoad records on the global manager.
func RecordViewLoad(route, outcome string) {
	globalManager.RecordViewLoad(route, outcome)
}

// RecordHTTPRequest records on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
