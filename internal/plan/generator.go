package plan

// #region imports
import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/selector"
)

// #endregion

// #region constants

const (
	// MaxAlternatives caps the alternative list.
	MaxAlternatives = 3
	// ExperiencePivot and ExperienceWeight shape the awareness experience factor.
	ExperiencePivot  = 0.5
	ExperienceWeight = 0.3
	// ImprovementBaseline is subtracted from the prediction to get the expected improvement.
	ImprovementBaseline = 0.5
	// ConfidenceLevel is reported with every prediction.
	ConfidenceLevel = 0.75
)

// #endregion

// #region generator

// Generator derives plan artifacts from a selected combination. Every method
// is a pure function of its arguments, the catalog, and the templates.
type Generator struct {
	catalog   *catalog.Catalog
	ranker    *selector.Selector
	templates Templates
}

// NewGenerator creates a generator over c using t.
func NewGenerator(c *catalog.Catalog, t Templates) *Generator {
	return &Generator{
		catalog:   c,
		ranker:    selector.NewSelector(c),
		templates: t,
	}
}

// #endregion

// #region guidance

// Guidance expands the guidance templates for comb. Every strategy in comb
// must exist in the catalog. The profile and context do not change the text.
func (g *Generator) Guidance(comb selector.Combination, _ learner.Profile, _ learner.Context) (Guidance, error) {
	primary, err := g.catalog.Get(comb.PrimaryStrategy)
	if err != nil {
		return Guidance{}, fmt.Errorf("guidance: %w", err)
	}
	r := strings.NewReplacer(
		"{strategy}", primary.Name,
		"{description}", primary.Description,
	)

	steps := make([]string, len(g.templates.Steps))
	for i, s := range g.templates.Steps {
		steps[i] = r.Replace(s)
	}

	notes := make([]string, 0, len(comb.ComplementaryStrategies))
	for _, name := range comb.ComplementaryStrategies {
		comp, err := g.catalog.Get(name)
		if err != nil {
			return Guidance{}, fmt.Errorf("guidance: %w", err)
		}
		nr := strings.NewReplacer(
			"{strategy}", primary.Name,
			"{complement}", comp.Name,
			"{complement_description}", comp.Description,
		)
		notes = append(notes, nr.Replace(g.templates.IntegrationNote))
	}

	return Guidance{
		PrimaryStrategy:   primary.Name,
		PrimaryGuidance:   r.Replace(g.templates.PrimaryGuidance),
		Steps:             steps,
		SuccessIndicators: clone(g.templates.SuccessIndicators),
		CommonPitfalls:    clone(g.templates.CommonPitfalls),
		IntegrationNotes:  notes,
	}, nil
}

// #endregion

// #region prediction

// Predict estimates effectiveness as
// clip(primary_score * (1 + (awareness - 0.5) * 0.3) * synergy).
func (g *Generator) Predict(comb selector.Combination, profile learner.Profile, _ learner.Context) Prediction {
	predicted := scoring.Clip(comb.PrimaryScore * ExperienceFactor(profile.MetacognitiveAwareness) * comb.CombinationSynergy)
	return Prediction{
		PredictedEffectiveness: predicted,
		ConfidenceLevel:        ConfidenceLevel,
		ExpectedImprovement:    predicted - ImprovementBaseline,
		TimeToEffectiveness:    g.templates.TimeToEffectiveness,
	}
}

// ExperienceFactor returns 1 + (awareness - 0.5) * 0.3.
func ExperienceFactor(awareness float64) float64 {
	return 1 + (awareness-ExperiencePivot)*ExperienceWeight
}

// #endregion

// #region alternatives

// Alternatives lists up to three non-primary strategies scoring above 0.6,
// best first, with catalog order breaking ties.
func (g *Generator) Alternatives(scores scoring.ScoreMap, comb selector.Combination) []Alternative {
	out := make([]Alternative, 0, MaxAlternatives)
	for _, e := range g.ranker.Rank(scores) {
		if len(out) == MaxAlternatives {
			break
		}
		if e.Name == comb.PrimaryStrategy || e.Score <= selector.ComplementaryThreshold {
			continue
		}
		out = append(out, Alternative{
			Strategy: e.Name,
			Score:    e.Score,
			Reason:   g.alternativeReason(e),
		})
	}
	return out
}

func (g *Generator) alternativeReason(e scoring.Entry) string {
	desc := e.Name
	if def, err := g.catalog.Get(e.Name); err == nil {
		desc = def.Description
	}
	return strings.NewReplacer(
		"{strategy}", e.Name,
		"{score}", strconv.FormatFloat(e.Score, 'f', 2, 64),
		"{description}", desc,
	).Replace(g.templates.AlternativeReason)
}

// #endregion

// #region static-plans

// Triggers returns the adaptation triggers. They do not depend on the
// combination.
func (g *Generator) Triggers() []Trigger {
	out := make([]Trigger, len(g.templates.Triggers))
	copy(out, g.templates.Triggers)
	return out
}

// Indicators returns the monitoring indicators. They do not depend on the
// combination.
func (g *Generator) Indicators() []Indicator {
	out := make([]Indicator, len(g.templates.Indicators))
	copy(out, g.templates.Indicators)
	return out
}

// #endregion

// #region helpers

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// #endregion
