package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Credential outcome labels.
const (
	OutcomeIssued   = "issued"
	OutcomeReissued = "reissued"
	OutcomeRejected = "rejected"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	credentials *prometheus.CounterVec
}

// NewMetrics initializes and registers collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growid_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "growid_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growid_http_errors_total",
				Help: "Total number of HTTP requests answered with an error",
			},
			[]string{"route", "method", "code"},
		),
		credentials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growid_credentials_total",
				Help: "Credential lifecycle outcomes",
			},
			[]string{"outcome", "reason"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.errors, m.credentials)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordCredential counts a credential outcome. reason is empty for successes.
func (m *Metrics) RecordCredential(outcome, reason string) {
	if m == nil {
		return
	}
	m.credentials.WithLabelValues(outcome, reason).Inc()
}
