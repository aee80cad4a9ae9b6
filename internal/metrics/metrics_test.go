package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSelection(learner.ObjectiveFactRetention, "retrieval_practice", 2*time.Millisecond)
	m.ObserveSelection(learner.ObjectiveFactRetention, "retrieval_practice", time.Millisecond)
	m.ObserveError("select")
	m.ObserveDecision(gate.GateDecision{
		Action: "reduce_strategy_complexity",
		Fired: []gate.FiredTrigger{
			{Trigger: plan.Trigger{Name: plan.TriggerCognitiveOverload}},
			{Trigger: plan.Trigger{Name: plan.TriggerMasteryAchieved}},
		},
	})
	m.ObserveDecision(gate.GateDecision{Action: gate.ActionContinue})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Selections.WithLabelValues("fact_retention", "retrieval_practice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TriggersFired.WithLabelValues("cognitive_overload")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues(gate.ActionContinue)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SelectionLatency))

	count, err := testutil.GatherAndCount(reg, "strategy_engine_selections_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_UnknownObjectivesShareOneSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSelection("custom_goal_1", "retrieval_practice", time.Millisecond)
	m.ObserveSelection("custom_goal_2", "retrieval_practice", time.Millisecond)
	m.ObserveSelection("", "retrieval_practice", time.Millisecond)
	m.ObserveSelection(learner.ObjectiveTransfer, "retrieval_practice", time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Selections.WithLabelValues(OtherObjective, "retrieval_practice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("transfer", "retrieval_practice")))

	count, err := testutil.GatherAndCount(reg, "strategy_engine_selections_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
