package gate

import "github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"

// #region observation
// Observation carries live learner signals. Nil fields were not observed.
type Observation struct {
	Performance   *float64 `json:"performance,omitempty"`
	CognitiveLoad *float64 `json:"cognitive_load,omitempty"`
	Mastery       *float64 `json:"mastery,omitempty"`
}

// #endregion observation

// #region fired-trigger
// FiredTrigger is a trigger whose condition held for the observation.
type FiredTrigger struct {
	Trigger plan.Trigger `json:"trigger"`
	Signal  float64      `json:"signal"`
	Reason  string       `json:"reason"`
}

// #endregion fired-trigger

// #region gate-decision
// ActionContinue is returned when no trigger fires.
const ActionContinue = "continue_current_plan"

// GateDecision is the output of evaluating a plan's triggers.
type GateDecision struct {
	Action string         `json:"action"` // first fired trigger's action, or ActionContinue
	Reason string         `json:"reason"`
	Fired  []FiredTrigger `json:"fired"`
}

// Adapt reports whether the plan should be adapted.
func (d GateDecision) Adapt() bool {
	return len(d.Fired) > 0
}

// #endregion gate-decision
