package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the company record store.
type Metrics struct {
	QueryLatency   *prometheus.HistogramVec
	QueryFallbacks prometheus.Counter
	QueryFailures  prometheus.Counter
}

// New registers the company store metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the company store metrics with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ayala_companies_query_duration_seconds",
			Help:    "Company store query latency by query mode",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"mode"}), // mode: "tiered", "simplified"

		QueryFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "ayala_companies_query_fallbacks_total",
			Help: "Tiered company queries that failed and were retried in simplified form",
		}),

		QueryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ayala_companies_query_failures_total",
			Help: "Company queries that failed in both tiered and simplified form",
		}),
	}
}

func (m *Metrics) ObserveQuery(mode string, d time.Duration) {
	if m != nil {
		m.QueryLatency.WithLabelValues(mode).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementFallback() {
	if m != nil {
		m.QueryFallbacks.Inc()
	}
}

func (m *Metrics) IncrementFailure() {
	if m != nil {
		m.QueryFailures.Inc()
	}
}
