package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard
type Metrics struct {
	// Load (ticker switch) metrics
	LoadsTotal      *prometheus.CounterVec
	LoadDuration    *prometheus.HistogramVec
	StaleDropsTotal *prometheus.CounterVec

	// Chart cache metrics
	ChartCacheTotal *prometheus.CounterVec

	// Background refresh metrics
	RefreshTicksTotal *prometheus.CounterVec

	// Backend API metrics
	BackendRequestsTotal *prometheus.CounterVec
	BackendErrorsTotal   *prometheus.CounterVec
	BackendDuration      *prometheus.HistogramVec

	// Ops HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		LoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "load",
				Name:      "requests_total",
				Help:      "Total number of ticker load operations",
			},
			[]string{"status"},
		),
		LoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_dashboard",
				Subsystem: "load",
				Name:      "duration_seconds",
				Help:      "Duration of ticker load operations in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"status"},
		),
		StaleDropsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "load",
				Name:      "stale_drops_total",
				Help:      "Total number of fetch results discarded because the active ticker changed",
			},
			[]string{"operation"},
		),
		ChartCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "chart",
				Name:      "cache_total",
				Help:      "Chart series cache lookups by timeframe and result",
			},
			[]string{"timeframe", "result"},
		),
		RefreshTicksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "refresh",
				Name:      "ticks_total",
				Help:      "Background quote refresh ticks by result",
			},
			[]string{"result"},
		),
		BackendRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Total number of backend API requests",
			},
			[]string{"operation"},
		),
		BackendErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "backend",
				Name:      "errors_total",
				Help:      "Total number of backend API errors",
			},
			[]string{"operation", "error_type"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_dashboard",
				Subsystem: "backend",
				Name:      "duration_seconds",
				Help:      "Duration of backend API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of ops HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_dashboard",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of ops HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stock_dashboard",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"breaker"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_dashboard",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"breaker"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// SetMetrics replaces the global metrics instance (useful for testing)
func SetMetrics(m *Metrics) {
	globalMetrics = m
}

// RecordLoad records a completed load operation
func (m *Metrics) RecordLoad(status string, duration time.Duration) {
	m.LoadsTotal.WithLabelValues(status).Inc()
	m.LoadDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordStaleDrop records a fetch result discarded after a ticker switch
func (m *Metrics) RecordStaleDrop(operation string) {
	m.StaleDropsTotal.WithLabelValues(operation).Inc()
}

// RecordChartCache records a chart cache lookup result ("hit" or "miss")
func (m *Metrics) RecordChartCache(timeframe, result string) {
	m.ChartCacheTotal.WithLabelValues(timeframe, result).Inc()
}

// RecordRefreshTick records a background refresh tick ("ok" or "miss")
func (m *Metrics) RecordRefreshTick(result string) {
	m.RefreshTicksTotal.WithLabelValues(result).Inc()
}

// RecordBackendRequest records a backend API request
func (m *Metrics) RecordBackendRequest(operation string) {
	m.BackendRequestsTotal.WithLabelValues(operation).Inc()
}

// RecordBackendError records a backend API error
func (m *Metrics) RecordBackendError(operation, errorType string) {
	m.BackendErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// RecordBackendDuration records the duration of a backend API call
func (m *Metrics) RecordBackendDuration(operation string, duration time.Duration) {
	m.BackendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records an ops HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(breaker string, state int) {
	m.CircuitBreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(breaker string) {
	m.CircuitBreakerTrips.WithLabelValues(breaker).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveLoad records the load duration and status
func (t *Timer) ObserveLoad(status string) {
	t.metrics.RecordLoad(status, time.Since(t.start))
}

// ObserveBackend records the backend call duration
func (t *Timer) ObserveBackend(operation string) {
	t.metrics.RecordBackendDuration(operation, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
