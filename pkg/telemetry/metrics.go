package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus metrics for handler invocations and backend
// calls. A nil *Metrics is a valid no-op collector so callers never need to
// guard their recording sites.
type Metrics struct {
	invocations     *prometheus.CounterVec
	invocationTime  *prometheus.HistogramVec
	backendErrors   *prometheus.CounterVec
	callbackResumes *prometheus.CounterVec
}

// NewMetrics creates a metrics collector registered against the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "s3object",
				Name:      "handler_invocations_total",
				Help:      "Handler invocations by action and outcome status.",
			},
			[]string{"action", "status"},
		),
		invocationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "s3object",
				Name:      "handler_duration_seconds",
				Help:      "Handler invocation duration by action.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		backendErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "s3object",
				Name:      "backend_errors_total",
				Help:      "Classified backend errors by handler error code.",
			},
			[]string{"code"},
		),
		callbackResumes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "s3object",
				Name:      "callback_resumes_total",
				Help:      "Invocations resumed from a callback context, by action.",
			},
			[]string{"action"},
		),
	}

	reg.MustRegister(m.invocations, m.invocationTime, m.backendErrors, m.callbackResumes)
	return m
}

// RecordInvocation records one handler invocation with its outcome status.
func (m *Metrics) RecordInvocation(action, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(action, status).Inc()
	m.invocationTime.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordBackendError records a classified backend error.
func (m *Metrics) RecordBackendError(code string) {
	if m == nil {
		return
	}
	m.backendErrors.WithLabelValues(code).Inc()
}

// RecordResume records an invocation that resumed from a callback context.
func (m *Metrics) RecordResume(action string) {
	if m == nil {
		return
	}
	m.callbackResumes.WithLabelValues(action).Inc()
}
