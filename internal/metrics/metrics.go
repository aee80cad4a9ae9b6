package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

// OtherObjective labels selections whose objective is not a built-in one.
const OtherObjective = "other"

// Metrics implements engine.Observer on Prometheus collectors.
type Metrics struct {
	Selections       *prometheus.CounterVec
	SelectionLatency prometheus.Histogram
	Errors           *prometheus.CounterVec
	TriggersFired    *prometheus.CounterVec
	Decisions        *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Selections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strategy_engine_selections_total",
				Help: "Total number of assembled plans",
			},
			[]string{"objective", "primary"},
		),
		SelectionLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strategy_engine_selection_duration_seconds",
				Help:    "Plan assembly duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
			},
		),
		Errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strategy_engine_errors_total",
				Help: "Total number of failed selections by pipeline stage",
			},
			[]string{"stage"},
		),
		TriggersFired: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strategy_engine_triggers_fired_total",
				Help: "Total number of adaptation triggers fired",
			},
			[]string{"trigger"},
		),
		Decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strategy_engine_gate_decisions_total",
				Help: "Total number of trigger gate decisions by action",
			},
			[]string{"action"},
		),
	}
}

func (m *Metrics) ObserveSelection(objective learner.Objective, primary string, elapsed time.Duration) {
	m.Selections.WithLabelValues(objectiveLabel(objective), primary).Inc()
	m.SelectionLatency.Observe(elapsed.Seconds())
}

// objectiveLabel keeps the objective label set closed; request objectives
// are free-form.
func objectiveLabel(o learner.Objective) string {
	if o.Known() {
		return string(o)
	}
	return OtherObjective
}

func (m *Metrics) ObserveError(stage string) {
	m.Errors.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveDecision(d gate.GateDecision) {
	m.Decisions.WithLabelValues(d.Action).Inc()
	for _, f := range d.Fired {
		m.TriggersFired.WithLabelValues(string(f.Trigger.Name)).Inc()
	}
}
