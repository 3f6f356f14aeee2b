// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fairshare"

// Metrics groups the server's collectors. Create one per registry.
type Metrics struct {
	// RPCRequests counts finished RPCs by procedure and Connect code ("ok" on success).
	RPCRequests *prometheus.CounterVec
	// RPCDuration observes RPC latency by procedure.
	RPCDuration *prometheus.HistogramVec
	// Validations counts reconciliation runs by split mode and outcome.
	Validations *prometheus.CounterVec
	// ValidationIssues counts reported errors and warnings by severity.
	ValidationIssues *prometheus.CounterVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Number of RPCs handled, by procedure and code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "expense",
			Name:      "validations_total",
			Help:      "Expense reconciliation runs, by split mode and outcome.",
		}, []string{"mode", "outcome"}),
		ValidationIssues: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "expense",
			Name:      "validation_issues_total",
			Help:      "Reconciliation messages reported, by severity.",
		}, []string{"severity"}),
	}
}

// ObserveValidation records one validator run. A nil receiver is a no-op.
func (m *Metrics) ObserveValidation(mode string, ok bool, errors, warnings int) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	m.Validations.WithLabelValues(mode, outcome).Inc()
	m.ValidationIssues.WithLabelValues("error").Add(float64(errors))
	m.ValidationIssues.WithLabelValues("warning").Add(float64(warnings))
}
