package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for reference-data lookups.
type Metrics struct {
	Lookups   *prometheus.CounterVec
	CacheHits *prometheus.CounterVec
}

// New creates and registers the reference-data metrics.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanhub_refdata_lookups_total",
			Help: "Reference-data lookups by kind and outcome (hit, miss, error)",
		}, []string{"kind", "outcome"}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanhub_refdata_cache_hits_total",
			Help: "Reference-data lookups served from the redis cache",
		}, []string{"kind"}),
	}
}

// RecordLookup counts one upstream lookup outcome. Nil-safe so tests can
// pass a zero gateway without registering collectors.
func (m *Metrics) RecordLookup(kind, outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheHit counts one cache-served lookup.
func (m *Metrics) RecordCacheHit(kind string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(kind).Inc()
}
