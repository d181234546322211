package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ayala/pkg/platform/circuit"
)

// Metrics covers turn handling and the resolver breaker.
type Metrics struct {
	Turns            *prometheus.CounterVec
	TurnLatency      prometheus.Histogram
	Degraded         *prometheus.CounterVec
	ResultsReturned  prometheus.Histogram
	BreakerState     *prometheus.GaugeVec
	BreakerChanges   *prometheus.CounterVec
	EventsDropped    prometheus.Counter
	EventsPublished  prometheus.Counter
	EventPublishErrs prometheus.Counter
}

// New registers the conversation metrics with the default registry.
func New() *Metrics {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry registers the metrics with reg. Tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	return newWith(promauto.With(reg))
}

func newWith(f promauto.Factory) *Metrics {
	return &Metrics{
		Turns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ayala_conversation_turns_total",
			Help: "Handled turns by outcome and intent source",
		}, []string{"outcome", "source"}),

		TurnLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ayala_conversation_turn_duration_seconds",
			Help:    "End-to-end turn latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),

		Degraded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ayala_conversation_degraded_total",
			Help: "Turns answered by a fallback or terminal path, by reason",
		}, []string{"reason"}),

		ResultsReturned: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ayala_conversation_results_returned",
			Help:    "Companies returned per search turn",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
		}),

		BreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ayala_circuit_breaker_state",
			Help: "Breaker state by dependency: 0 closed, 1 open, 2 half-open",
		}, []string{"dependency"}),

		BreakerChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ayala_circuit_breaker_transitions_total",
			Help: "Breaker state transitions by dependency and target state",
		}, []string{"dependency", "to"}),

		EventsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "ayala_conversation_events_dropped_total",
			Help: "Turn events overwritten in the buffer before they were shipped",
		}),

		EventsPublished: f.NewCounter(prometheus.CounterOpts{
			Name: "ayala_conversation_events_published_total",
			Help: "Turn events delivered to the sink",
		}),

		EventPublishErrs: f.NewCounter(prometheus.CounterOpts{
			Name: "ayala_conversation_event_publish_errors_total",
			Help: "Failed turn event batch deliveries",
		}),
	}
}

func (m *Metrics) ObserveTurn(outcome, source string, d time.Duration) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(outcome, source).Inc()
	m.TurnLatency.Observe(d.Seconds())
}

func (m *Metrics) IncrementDegraded(reason string) {
	if m != nil && reason != "" {
		m.Degraded.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) ObserveResults(n int) {
	if m != nil {
		m.ResultsReturned.Observe(float64(n))
	}
}

// BreakerStateChanged matches circuit.WithOnStateChange.
func (m *Metrics) BreakerStateChanged(name string, _, to circuit.State) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(float64(to))
	m.BreakerChanges.WithLabelValues(name, to.String()).Inc()
}

func (m *Metrics) IncrementEventsDropped() {
	if m != nil {
		m.EventsDropped.Inc()
	}
}

func (m *Metrics) AddEventsDropped(n int) {
	if m != nil && n > 0 {
		m.EventsDropped.Add(float64(n))
	}
}

func (m *Metrics) AddEventsPublished(n int) {
	if m != nil {
		m.EventsPublished.Add(float64(n))
	}
}

func (m *Metrics) IncrementEventPublishError() {
	if m != nil {
		m.EventPublishErrs.Inc()
	}
}
