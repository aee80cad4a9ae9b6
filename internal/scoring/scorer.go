package scoring

// #region imports
import (
	"fmt"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

// #endregion

// #region scorer

// Scorer computes base fitness per catalog strategy.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer creates a scorer over c.
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// Score returns clip(0.7 + contextBonus + awareness*0.2) for every strategy,
// in catalog order. contextBonus is 0.1 when objective is one of the
// strategy's effectiveness contexts. The context argument does not affect
// fitness.
func (s *Scorer) Score(profile learner.Profile, objective learner.Objective, _ learner.Context) ScoreMap {
	awareness := profile.MetacognitiveAwareness * AwarenessWeight
	defs := s.catalog.All()
	entries := make([]Entry, len(defs))
	for i, d := range defs {
		bonus := 0.0
		if d.EffectiveFor(objective) {
			bonus = ContextBonus
		}
		entries[i] = Entry{Name: d.Name, Score: Clip(BaseFitness + bonus + awareness)}
	}
	return NewScoreMap(StageFitness, entries)
}

// #endregion

// #region load-adjuster

// LoadAdjuster rescales scores by comparing the learner's cognitive load
// with each strategy's cognitive demands.
type LoadAdjuster struct {
	catalog *catalog.Catalog
	policy  ClipPolicy
}

// NewLoadAdjuster creates an adjuster over c.
func NewLoadAdjuster(c *catalog.Catalog, policy ClipPolicy) *LoadAdjuster {
	return &LoadAdjuster{catalog: c, policy: policy}
}

// Adjust damps demanding strategies under high load and boosts them under
// low load. A nil load means DefaultLoad. The input map is not modified.
// The profile does not affect the adjustment.
func (a *LoadAdjuster) Adjust(scores ScoreMap, load *learner.LoadState, _ learner.Profile) (ScoreMap, error) {
	if scores.Stage() != StageFitness {
		return ScoreMap{}, fmt.Errorf("load adjust: got %s scores: %w", scores.Stage(), ErrStageOrder)
	}
	total := learner.EffectiveLoad(load)
	return scores.transform(StageLoadAdjusted, func(e Entry) (float64, error) {
		def, err := a.catalog.Get(e.Name)
		if err != nil {
			return 0, fmt.Errorf("load adjust: %w", err)
		}
		return a.policy.apply(e.Score * LoadFactor(total, def.CognitiveDemands)), nil
	})
}

// LoadFactor returns the multiplier for a strategy with the given demand
// at the given load. The high-load branch takes priority.
func LoadFactor(load, demand float64) float64 {
	switch {
	case load > HighLoad && demand > HighLoadDemand:
		return OverloadDamping
	case load < LowLoad && demand > LowLoadDemand:
		return UnderloadBoosting
	default:
		return 1
	}
}

// #endregion

// #region personalizer

// Personalizer applies repertoire familiarity and cognitive flexibility.
type Personalizer struct {
	policy ClipPolicy
}

// NewPersonalizer creates a personalizer.
func NewPersonalizer(policy ClipPolicy) *Personalizer {
	return &Personalizer{policy: policy}
}

// Personalize multiplies known strategies by 1.1, then every strategy by
// 1 + (flexibility - 0.5) * 0.2.
func (p *Personalizer) Personalize(scores ScoreMap, profile learner.Profile) (ScoreMap, error) {
	if scores.Stage() != StageLoadAdjusted {
		return ScoreMap{}, fmt.Errorf("personalize: got %s scores: %w", scores.Stage(), ErrStageOrder)
	}
	flex := FlexibilityFactor(profile.CognitiveFlexibility)
	return scores.transform(StagePersonalized, func(e Entry) (float64, error) {
		s := e.Score
		if profile.Knows(e.Name) {
			s *= RepertoireBoost
		}
		return p.policy.apply(s * flex), nil
	})
}

// FlexibilityFactor returns 1 + (flexibility - 0.5) * 0.2.
func FlexibilityFactor(flexibility float64) float64 {
	return 1 + (flexibility-FlexibilityPivot)*FlexibilityWeight
}

// #endregion
