package plan

// #region imports
import (
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/selector"
)

// #endregion

// #region guidance

// Guidance is the implementation guidance for a strategy combination.
type Guidance struct {
	PrimaryStrategy   string   `json:"primary_strategy"`
	PrimaryGuidance   string   `json:"primary_guidance"`
	Steps             []string `json:"step_by_step"`
	SuccessIndicators []string `json:"success_indicators"`
	CommonPitfalls    []string `json:"common_pitfalls"`
	IntegrationNotes  []string `json:"integration_notes"`
}

// #endregion

// #region prediction

// Prediction estimates how effective the combination will be.
type Prediction struct {
	PredictedEffectiveness float64 `json:"predicted_effectiveness"`
	ConfidenceLevel        float64 `json:"confidence_level"`
	ExpectedImprovement    float64 `json:"expected_improvement"` // may be negative
	TimeToEffectiveness    string  `json:"time_to_effectiveness"`
}

// #endregion

// #region alternative

// Alternative is a runner-up strategy the learner can fall back to.
type Alternative struct {
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}

// #endregion

// #region trigger

// TriggerName identifies an adaptation trigger.
type TriggerName string

const (
	TriggerPerformanceDecline TriggerName = "performance_decline"
	TriggerCognitiveOverload  TriggerName = "cognitive_overload"
	TriggerMasteryAchieved    TriggerName = "mastery_achieved"
)

// Trigger is a condition under which the plan should be adapted.
type Trigger struct {
	Name      TriggerName `json:"trigger" yaml:"trigger"`
	Threshold float64     `json:"threshold" yaml:"threshold"`
	Action    string      `json:"action" yaml:"action"`
}

// #endregion

// #region indicator

// Indicator is a monitoring metric with a target value.
type Indicator struct {
	Name        string  `json:"indicator" yaml:"indicator"`
	Target      float64 `json:"target" yaml:"target"`
	Measurement string  `json:"measurement" yaml:"measurement"`
}

// #endregion

// #region plan

// Plan is the engine's top-level output. It is built once per request and
// not modified afterwards.
type Plan struct {
	ID           string               `json:"plan_id"`
	LearnerID    string               `json:"learner_id"`
	Objective    learner.Objective    `json:"objective"`
	Scores       []scoring.Entry      `json:"strategy_scores"`
	Combination  selector.Combination `json:"strategy_combination"`
	Guidance     Guidance             `json:"implementation_guidance"`
	Prediction   Prediction           `json:"effectiveness_prediction"`
	Alternatives []Alternative        `json:"alternative_strategies"`
	Triggers     []Trigger            `json:"adaptation_triggers"`
	Indicators   []Indicator          `json:"monitoring_indicators"`
}

// #endregion
