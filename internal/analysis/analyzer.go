package analysis

// #region imports
import (
	"math"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

// #endregion

// #region analyzer

// Analyzer runs the history and real-time analyses. It holds no state other
// than its baselines and is safe for concurrent use.
type Analyzer struct {
	baselines Baselines
}

// NewAnalyzer creates an analyzer reporting b.
func NewAnalyzer(b Baselines) *Analyzer {
	return &Analyzer{baselines: b}
}

// #endregion

// #region trajectory

// AnalyzeTrajectory compares the first and last episodes of a chronological
// history. Only the endpoints are considered; intermediate episodes do not
// change the trend.
func (a *Analyzer) AnalyzeTrajectory(learnerID string, history []learner.Episode) Trajectory {
	if len(history) == 0 {
		return Trajectory{
			LearnerID:      learnerID,
			Trend:          TrendInsufficientData,
			Pattern:        PatternBaseline,
			KeyTransitions: []string{},
		}
	}

	first := history[0].StrategyEffectiveness
	last := history[len(history)-1].StrategyEffectiveness

	trend, pattern := TrendStable, PatternPlateau
	if len(history) > 1 && last > first {
		trend, pattern = TrendImproving, PatternProgressive
	}

	return Trajectory{
		LearnerID:          learnerID,
		Trend:              trend,
		Pattern:            pattern,
		KeyTransitions:     append([]string{}, a.baselines.KeyTransitions...),
		TrajectoryStrength: a.baselines.TrajectoryStrength,
		EpisodeCount:       len(history),
		FirstEffectiveness: first,
		LastEffectiveness:  last,
	}
}

// #endregion

// #region skills

// IdentifySkills returns the baseline skill categorization. The history is
// not inspected.
func (a *Analyzer) IdentifySkills(_ []learner.Episode) SkillPattern {
	s := a.baselines.Skills
	return SkillPattern{
		DevelopingSkills: append([]string{}, s.DevelopingSkills...),
		MasteredSkills:   append([]string{}, s.MasteredSkills...),
		SkillGaps:        append([]string{}, s.SkillGaps...),
		DevelopmentRate:  s.DevelopmentRate,
	}
}

// #endregion

// #region coherence

// CoherencePerEpisode is added to the consciousness level per episode.
const CoherencePerEpisode = 0.05

// MeasureCoherence returns min(1, consciousness + 0.05 * len(episodes)).
func MeasureCoherence(profile learner.Profile, episodes []learner.Episode) float64 {
	return math.Min(1.0, profile.ConsciousnessLevel+CoherencePerEpisode*float64(len(episodes)))
}

// #endregion

// #region awareness

// AwarenessKey is the real-time data key carrying the current awareness level.
const AwarenessKey = "awareness_level"

// AnalyzeAwareness reads the awareness level from realTime, falling back to
// the baseline default, and reports the fixed dimension breakdown. Episodes
// are not inspected.
func (a *Analyzer) AnalyzeAwareness(_ []learner.Episode, realTime map[string]any) Awareness {
	level := a.baselines.DefaultAwareness
	if v, ok := numeric(realTime[AwarenessKey]); ok {
		level = v
	}
	return Awareness{
		CurrentLevel: level,
		Dimensions:   a.baselines.Dimensions,
		Stability:    a.baselines.Stability,
		GrowthRate:   a.baselines.GrowthRate,
	}
}

// #endregion

// #region helpers

// numeric converts the numeric types a decoded payload may carry.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// #endregion
