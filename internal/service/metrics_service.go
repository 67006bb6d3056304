package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the planning
// API: HTTP traffic, solver calls, state persistence, and coupling
// violations.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solverDuration  *prometheus.HistogramVec
	solverTotal     *prometheus.CounterVec
	stateWrites     *prometheus.CounterVec
	violations      prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solverDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_request_duration_seconds",
		Help:    "Latency of schedule solver calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	solverTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_requests_total",
		Help: "Total schedule solver calls",
	}, []string{"outcome"})

	stateWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_state_writes_total",
		Help: "Planning state persistence attempts",
	}, []string{"outcome"})

	violations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "requirement_violations_total",
		Help: "Lab/base coupling violations surfaced to planners",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solverDuration, solverTotal, stateWrites, violations, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solverDuration:  solverDuration,
		solverTotal:     solverTotal,
		stateWrites:     stateWrites,
		violations:      violations,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one handled HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": httpStatusLabel(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// ObserveSolverCall records one solver round trip.
func (s *MetricsService) ObserveSolverCall(ok bool, duration time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	s.solverDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	s.solverTotal.WithLabelValues(outcome).Inc()
}

// RecordStateWrite records one persistence attempt.
func (s *MetricsService) RecordStateWrite(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	s.stateWrites.WithLabelValues(outcome).Inc()
}

// RecordRequirementViolation counts a surfaced coupling violation.
func (s *MetricsService) RecordRequirementViolation() {
	s.violations.Inc()
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
