package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the moderation module.
type Metrics struct {
	// Per-category scorer latencies
	ScorerLatency *prometheus.HistogramVec

	// Decision outcomes by decision and need type
	DecisionOutcome *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram

	// Evaluations rejected before scoring (validation, oversized input)
	EvaluateErrors *prometheus.CounterVec
}

// New creates a Metrics instance with all moderation metrics registered.
func New() *Metrics {
	return &Metrics{
		ScorerLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fundguard_moderation_scorer_duration_seconds",
			Help:    "Duration of individual category scorers",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}, []string{"category"}),

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fundguard_moderation_decisions_total",
			Help: "Total moderation decisions by decision and need type",
		}, []string{"decision", "need_type"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundguard_moderation_evaluate_duration_seconds",
			Help:    "Duration of full moderation evaluation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		EvaluateErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fundguard_moderation_evaluate_errors_total",
			Help: "Evaluations that failed before producing a result",
		}, []string{"reason"}),
	}
}

// ObserveScorerLatency records the duration of one category scorer.
func (m *Metrics) ObserveScorerLatency(category string, d time.Duration) {
	if m != nil {
		m.ScorerLatency.WithLabelValues(category).Observe(d.Seconds())
	}
}

// IncrementDecision records a moderation decision.
func (m *Metrics) IncrementDecision(decision, needType string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(decision, needType).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementEvaluateError records a failed evaluation by reason.
func (m *Metrics) IncrementEvaluateError(reason string) {
	if m != nil {
		m.EvaluateErrors.WithLabelValues(reason).Inc()
	}
}
