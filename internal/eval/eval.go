package eval

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/selector"
)

// #region eval-harness
// EvalHarness checks an assembled plan against the selection invariants.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run validates p and returns pass/fail with one metric per check.
func (h *EvalHarness) Run(p plan.Plan) EvalResult {
	var metrics []EvalMetric
	var failReasons []string

	check := func(name string, value float64, pass bool, reason string) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, reason)
		}
	}

	comb := p.Combination

	// 1. Score bounds
	if h.config.RequireBoundedScores {
		outOfRange := 0
		for _, e := range p.Scores {
			if e.Score < 0 || e.Score > 1 {
				outOfRange++
			}
		}
		check("scores_bounded", float64(outOfRange), outOfRange == 0,
			fmt.Sprintf("%d scores outside [0,1]", outOfRange))
	}

	// 2. Primary holds the maximum score
	maxScore := math.Inf(-1)
	for _, e := range p.Scores {
		maxScore = math.Max(maxScore, e.Score)
	}
	check("primary_is_max", comb.PrimaryScore, len(p.Scores) == 0 || comb.PrimaryScore >= maxScore,
		fmt.Sprintf("primary score %.4f below maximum %.4f", comb.PrimaryScore, maxScore))

	// 3. Complementary set shape
	n := len(comb.ComplementaryStrategies)
	check("complementary_count", float64(n), n <= selector.MaxComplementary,
		fmt.Sprintf("%d complementary strategies exceeds %d", n, selector.MaxComplementary))

	excludes := true
	above := true
	scores := scoreIndex(p)
	for _, name := range comb.ComplementaryStrategies {
		if name == comb.PrimaryStrategy {
			excludes = false
		}
		if s, ok := scores[name]; ok && s <= selector.ComplementaryThreshold {
			above = false
		}
	}
	check("complementary_excludes_primary", boolValue(excludes), excludes,
		"complementary strategies contain the primary")
	check("complementary_above_threshold", boolValue(above), above,
		fmt.Sprintf("complementary strategy at or below %.2f", selector.ComplementaryThreshold))

	// 4. Synergy formula
	wantSynergy := math.Min(1.0, comb.PrimaryScore+selector.SynergyPerComplement*float64(n))
	check("combination_synergy", comb.CombinationSynergy,
		math.Abs(comb.CombinationSynergy-wantSynergy) <= h.config.Tolerance,
		fmt.Sprintf("synergy %.4f, want %.4f", comb.CombinationSynergy, wantSynergy))

	// 5. Alternatives
	altsOK := len(p.Alternatives) <= plan.MaxAlternatives
	for i, a := range p.Alternatives {
		if a.Strategy == comb.PrimaryStrategy || a.Score <= selector.ComplementaryThreshold {
			altsOK = false
		}
		if i > 0 && a.Score > p.Alternatives[i-1].Score {
			altsOK = false
		}
	}
	check("alternatives_ordered", float64(len(p.Alternatives)), altsOK,
		"alternatives unordered, oversized, or include the primary")

	// 6. Prediction bounds
	pred := p.Prediction.PredictedEffectiveness
	check("prediction_bounded", pred, pred >= 0 && pred <= 1,
		fmt.Sprintf("predicted effectiveness %.4f outside [0,1]", pred))

	reason := "all checks passed"
	if len(failReasons) > 0 {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  len(failReasons) == 0,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region helpers
func scoreIndex(p plan.Plan) map[string]float64 {
	out := make(map[string]float64, len(p.Scores))
	for _, e := range p.Scores {
		out[e.Name] = e.Score
	}
	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
