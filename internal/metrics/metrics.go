// Package metrics exposes Prometheus collectors for the Shepherd API.
//
// Collectors live on a dedicated registry so tests and multiple servers in one
// process never collide on the default registerer. All recording methods are
// safe on a nil *Metrics, which lets services run without instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shepherd"

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the application collectors
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	assessmentScored *prometheus.CounterVec
	matchesComputed  *prometheus.CounterVec
	invitationsSent  *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, including Go runtime and
// process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assessmentScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_scored_total",
			Help:      "Assessment submissions by test type and outcome.",
		}, []string{"test_type", "outcome"}),
		matchesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_computed_total",
			Help:      "Ministry match computations by outcome.",
		}, []string{"outcome"}),
		invitationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_sent_total",
			Help:      "Invitation emails by delivery outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.assessmentScored,
		m.matchesComputed,
		m.invitationsSent,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// AssessmentScored records a submission outcome for a test
func (m *Metrics) AssessmentScored(testType, outcome string) {
	if m == nil {
		return
	}
	m.assessmentScored.WithLabelValues(testType, outcome).Inc()
}

// MatchComputed records a matching run
func (m *Metrics) MatchComputed(outcome string) {
	if m == nil {
		return
	}
	m.matchesComputed.WithLabelValues(outcome).Inc()
}

// InvitationSent records an invitation delivery attempt
func (m *Metrics) InvitationSent(outcome string) {
	if m == nil {
		return
	}
	m.invitationsSent.WithLabelValues(outcome).Inc()
}
