package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the submission
// pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	appendAttempts  *prometheus.CounterVec
	appendRetries   *prometheus.CounterVec
	manualRecovery  prometheus.Counter
	rateLimited     prometheus.Counter
}

// NewMetricsService registers the pipeline's collectors on a fresh registry.
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

	appendAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheets_append_attempts_total",
		Help: "Spreadsheet append attempts by outcome",
	}, []string{"outcome"})

	appendRetries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheets_append_retries_total",
		Help: "Spreadsheet append retries by error category",
	}, []string{"category"})

	manualRecovery := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "manual_recovery_entries_total",
		Help: "Submissions that exhausted delivery and were logged for manual recovery",
	})

	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Requests rejected by the per-address rate limiter",
	})

	registry.MustRegister(requestDuration, requestTotal, appendAttempts, appendRetries, manualRecovery, rateLimited)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		appendAttempts:  appendAttempts,
		appendRetries:   appendRetries,
		manualRecovery:  manualRecovery,
		rateLimited:     rateLimited,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveAppendAttempt records one spreadsheet append attempt.
func (s *MetricsService) ObserveAppendAttempt(success bool) {
	if s == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	s.appendAttempts.WithLabelValues(outcome).Inc()
}

// ObserveAppendRetry records a scheduled retry for the given error category.
func (s *MetricsService) ObserveAppendRetry(category string) {
	if s == nil {
		return
	}
	s.appendRetries.WithLabelValues(category).Inc()
}

// ObserveManualRecovery records one manual-recovery emission.
func (s *MetricsService) ObserveManualRecovery() {
	if s == nil {
		return
	}
	s.manualRecovery.Inc()
}

// ObserveRateLimited records one rejected request.
func (s *MetricsService) ObserveRateLimited() {
	if s == nil {
		return
	}
	s.rateLimited.Inc()
}
