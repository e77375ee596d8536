// Package metrics exposes Prometheus counters for envelope intake.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the intake pipeline.
type Metrics struct {
	Envelopes *prometheus.CounterVec
	Documents *prometheus.CounterVec
	FollowUps *prometheus.CounterVec
}

// New creates and registers the intake metrics.
func New() *Metrics {
	return &Metrics{
		Envelopes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanhub_intake_envelopes_total",
			Help: "Envelopes ingested by outcome (registered, rejected)",
		}, []string{"outcome"}),
		Documents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanhub_intake_documents_total",
			Help: "Documents ingested by document name and initial status",
		}, []string{"document", "status"}),
		FollowUps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanhub_intake_follow_ups_total",
			Help: "Documents entering follow-up at intake, by status code",
		}, []string{"code"}),
	}
}

// RecordEnvelope counts one intake outcome. Nil-safe so tests can run
// without registering collectors.
func (m *Metrics) RecordEnvelope(outcome string) {
	if m == nil {
		return
	}
	m.Envelopes.WithLabelValues(outcome).Inc()
}

// RecordDocument counts one normalized document by its initial disposition.
func (m *Metrics) RecordDocument(document, status string) {
	if m == nil {
		return
	}
	m.Documents.WithLabelValues(document, status).Inc()
}

// RecordFollowUp counts one document parked for follow-up at intake.
func (m *Metrics) RecordFollowUp(code string) {
	if m == nil {
		return
	}
	m.FollowUps.WithLabelValues(code).Inc()
}
