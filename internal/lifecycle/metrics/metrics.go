package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the lifecycle event store path.
type Metrics struct {
	AppendDuration *prometheus.HistogramVec
	EventsAppended *prometheus.CounterVec
}

// New creates and registers the lifecycle metrics.
func New() *Metrics {
	return &Metrics{
		AppendDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scanhub_lifecycle_append_duration_seconds",
			Help:    "Latency of event batch appends by outcome (ok, conflict, error)",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		EventsAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanhub_lifecycle_events_appended_total",
			Help: "Events recorded on envelope streams by event type",
		}, []string{"event"}),
	}
}

// ObserveAppend records one append attempt. Nil-safe so tests can run the
// service without registering collectors.
func (m *Metrics) ObserveAppend(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.AppendDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordEvent counts one appended event by type.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.EventsAppended.WithLabelValues(eventType).Inc()
}
