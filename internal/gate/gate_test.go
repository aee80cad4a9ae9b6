package gate

import (
	"testing"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

func f(v float64) *float64 { return &v }

func defaultTriggers() []plan.Trigger {
	return plan.DefaultTemplates().Triggers
}

func TestGateContinueOnHealthySignals(t *testing.T) {
	g := NewGate()
	decision := g.Evaluate(defaultTriggers(), Observation{
		Performance:   f(0.7),
		CognitiveLoad: f(0.5),
		Mastery:       f(0.6),
	})

	if decision.Adapt() {
		t.Fatalf("expected no adaptation, got %+v", decision.Fired)
	}
	if decision.Action != ActionContinue {
		t.Fatalf("expected %s, got %s", ActionContinue, decision.Action)
	}
}

func TestGatePerformanceDecline(t *testing.T) {
	g := NewGate()
	decision := g.Evaluate(defaultTriggers(), Observation{Performance: f(0.2)})

	if !decision.Adapt() {
		t.Fatal("expected adaptation")
	}
	if decision.Fired[0].Trigger.Name != plan.TriggerPerformanceDecline {
		t.Fatalf("expected performance_decline, got %s", decision.Fired[0].Trigger.Name)
	}
	if decision.Action != "switch_to_alternative_strategy" {
		t.Fatalf("unexpected action %s", decision.Action)
	}
}

func TestGatePerformanceAtThresholdDoesNotFire(t *testing.T) {
	g := NewGate()
	decision := g.Evaluate(defaultTriggers(), Observation{Performance: f(0.3)})
	if decision.Adapt() {
		t.Fatal("performance equal to threshold should not fire")
	}
}

func TestGateOverloadAndMastery(t *testing.T) {
	g := NewGate()
	decision := g.Evaluate(defaultTriggers(), Observation{
		CognitiveLoad: f(0.8),
		Mastery:       f(0.95),
	})

	if len(decision.Fired) != 2 {
		t.Fatalf("expected 2 fired triggers, got %d", len(decision.Fired))
	}
	if decision.Fired[0].Trigger.Name != plan.TriggerCognitiveOverload {
		t.Errorf("expected overload first (plan order), got %s", decision.Fired[0].Trigger.Name)
	}
	if decision.Action != "reduce_strategy_complexity" {
		t.Errorf("unexpected action %s", decision.Action)
	}
	if decision.Fired[1].Signal != 0.95 {
		t.Errorf("unexpected mastery signal %v", decision.Fired[1].Signal)
	}
}

func TestGateIgnoresUnobservedAndUnknown(t *testing.T) {
	g := NewGate()
	triggers := append(defaultTriggers(), plan.Trigger{Name: "boredom", Threshold: 0, Action: "x"})
	decision := g.Evaluate(triggers, Observation{})
	if decision.Adapt() {
		t.Fatalf("expected no fired triggers, got %+v", decision.Fired)
	}
}
