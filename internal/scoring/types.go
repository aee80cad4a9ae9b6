package scoring

import (
	"errors"
	"fmt"
)

// ErrStageOrder is returned when a stage receives scores from anything other
// than the stage immediately before it.
var ErrStageOrder = errors.New("score map out of stage order")

// #region clip-policy

// ClipPolicy controls whether intermediate stages re-clip scores to [0, 1].
type ClipPolicy string

const (
	// ClipEachStage clips after the load adjuster and the personalizer.
	ClipEachStage ClipPolicy = "each_stage"
	// ClipFinalOnly keeps adjusted and personalized values as raw weights;
	// only the effectiveness prediction is clipped.
	ClipFinalOnly ClipPolicy = "final_only"
)

// ParseClipPolicy maps a config string to a ClipPolicy. Empty means ClipEachStage.
func ParseClipPolicy(s string) (ClipPolicy, error) {
	switch ClipPolicy(s) {
	case "", ClipEachStage:
		return ClipEachStage, nil
	case ClipFinalOnly:
		return ClipFinalOnly, nil
	default:
		return "", fmt.Errorf("unknown clip policy %q", s)
	}
}

func (p ClipPolicy) apply(v float64) float64 {
	if p == ClipFinalOnly {
		return v
	}
	return Clip(v)
}

// #endregion

// #region weights

// Fitness weights.
const (
	BaseFitness     = 0.7
	ContextBonus    = 0.1
	AwarenessWeight = 0.2
)

// Load adjustment thresholds and factors.
const (
	HighLoad          = 0.7
	HighLoadDemand    = 0.6
	OverloadDamping   = 0.8
	LowLoad           = 0.4
	LowLoadDemand     = 0.7
	UnderloadBoosting = 1.2
)

// Personalization factors.
const (
	RepertoireBoost   = 1.1
	FlexibilityWeight = 0.2
	FlexibilityPivot  = 0.5
)

// #endregion

// #region helpers

// Clip restricts v to [0, 1].
func Clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion
