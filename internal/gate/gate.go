package gate

import (
	"fmt"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

// #region gate
// Gate evaluates adaptation triggers against observed learner signals.
type Gate struct{}

// NewGate creates a gate.
func NewGate() *Gate {
	return &Gate{}
}

// Evaluate checks each trigger in plan order. performance_decline fires when
// performance drops below its threshold; cognitive_overload and
// mastery_achieved fire when their signal reaches the threshold. Triggers
// with unknown names or unobserved signals never fire.
func (g *Gate) Evaluate(triggers []plan.Trigger, obs Observation) GateDecision {
	var fired []FiredTrigger

	for _, t := range triggers {
		switch t.Name {
		case plan.TriggerPerformanceDecline:
			if obs.Performance != nil && *obs.Performance < t.Threshold {
				fired = append(fired, FiredTrigger{
					Trigger: t,
					Signal:  *obs.Performance,
					Reason:  fmt.Sprintf("performance %.2f below %.2f", *obs.Performance, t.Threshold),
				})
			}
		case plan.TriggerCognitiveOverload:
			if obs.CognitiveLoad != nil && *obs.CognitiveLoad >= t.Threshold {
				fired = append(fired, FiredTrigger{
					Trigger: t,
					Signal:  *obs.CognitiveLoad,
					Reason:  fmt.Sprintf("cognitive load %.2f at or above %.2f", *obs.CognitiveLoad, t.Threshold),
				})
			}
		case plan.TriggerMasteryAchieved:
			if obs.Mastery != nil && *obs.Mastery >= t.Threshold {
				fired = append(fired, FiredTrigger{
					Trigger: t,
					Signal:  *obs.Mastery,
					Reason:  fmt.Sprintf("mastery %.2f at or above %.2f", *obs.Mastery, t.Threshold),
				})
			}
		}
	}

	if len(fired) == 0 {
		return GateDecision{
			Action: ActionContinue,
			Reason: "no adaptation trigger fired",
		}
	}

	return GateDecision{
		Action: fired[0].Trigger.Action,
		Reason: fmt.Sprintf("trigger %s: %s", fired[0].Trigger.Name, fired[0].Reason),
		Fired:  fired,
	}
}

// #endregion gate
