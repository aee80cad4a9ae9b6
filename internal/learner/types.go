package learner

// #region imports
import (
	"errors"
	"fmt"
	"time"
)

// #endregion

// #region errors

// ErrOutOfRange is returned by Validate when a bounded field leaves [0, 1].
var ErrOutOfRange = errors.New("value out of range [0,1]")

// #endregion

// #region objective

// Objective tags a learning objective. Strategies list the objectives they
// are effective for.
type Objective string

const (
	ObjectiveConceptualUnderstanding Objective = "conceptual_understanding"
	ObjectiveFactRetention           Objective = "fact_retention"
	ObjectiveProblemSolving          Objective = "problem_solving"
	ObjectiveSkillAcquisition        Objective = "skill_acquisition"
	ObjectiveCriticalThinking        Objective = "critical_thinking"
	ObjectiveTransfer                Objective = "transfer"
)

// Known reports whether o is one of the built-in objectives.
func (o Objective) Known() bool {
	switch o {
	case ObjectiveConceptualUnderstanding, ObjectiveFactRetention, ObjectiveProblemSolving,
		ObjectiveSkillAcquisition, ObjectiveCriticalThinking, ObjectiveTransfer:
		return true
	}
	return false
}

// #endregion

// #region profile

// Profile is a learner's cognitive profile. Supplied per request and never
// mutated by the engine.
type Profile struct {
	LearnerID              string   `json:"learner_id"`
	MetacognitiveAwareness float64  `json:"metacognitive_awareness_level"`
	CognitiveFlexibility   float64  `json:"cognitive_flexibility"`
	StrategyRepertoire     []string `json:"strategy_repertoire"`
	ConsciousnessLevel     float64  `json:"consciousness_level"`
}

// Knows reports whether name is in the learner's strategy repertoire.
func (p Profile) Knows(name string) bool {
	for _, s := range p.StrategyRepertoire {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks that every bounded field is inside [0, 1].
func (p Profile) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"metacognitive_awareness_level", p.MetacognitiveAwareness},
		{"cognitive_flexibility", p.CognitiveFlexibility},
		{"consciousness_level", p.ConsciousnessLevel},
	}
	for _, f := range fields {
		if err := unit(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// #endregion

// #region load-state

// DefaultLoad is used when the caller supplies no cognitive load state.
const DefaultLoad = 0.5

// LoadState is the learner's current cognitive load.
type LoadState struct {
	TotalLoad float64 `json:"total_load"`
}

// EffectiveLoad returns the total load, or DefaultLoad when s is nil.
func EffectiveLoad(s *LoadState) float64 {
	if s == nil {
		return DefaultLoad
	}
	return s.TotalLoad
}

// Validate checks TotalLoad is inside [0, 1].
func (s LoadState) Validate() error {
	return unit("total_load", s.TotalLoad)
}

// #endregion

// #region context

// Context is the situational context of a learning request.
type Context struct {
	Objective       Objective `json:"objective"`
	ComplexityLevel float64   `json:"complexity_level"`
}

// Validate checks ComplexityLevel is inside [0, 1].
func (c Context) Validate() error {
	return unit("complexity_level", c.ComplexityLevel)
}

// #endregion

// #region episode

// Episode is one historical learning episode. Histories are supplied in
// chronological order.
type Episode struct {
	ID                    string    `json:"id"`
	LearnerID             string    `json:"learner_id"`
	Strategy              string    `json:"strategy"`
	StrategyEffectiveness float64   `json:"strategy_effectiveness"`
	Timestamp             time.Time `json:"timestamp"`
}

// #endregion

// #region helpers

func unit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s=%.4f: %w", name, v, ErrOutOfRange)
	}
	return nil
}

// #endregion
