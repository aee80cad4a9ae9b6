package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

// #region helpers

func twoStrategyCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.StrategyDefinition{
			Name:                  "A",
			EffectivenessContexts: []learner.Objective{learner.ObjectiveProblemSolving},
			CognitiveDemands:      0.8,
		},
		catalog.StrategyDefinition{
			Name:                  "B",
			EffectivenessContexts: []learner.Objective{learner.ObjectiveFactRetention},
			CognitiveDemands:      0.3,
		},
	)
	require.NoError(t, err)
	return c
}

// #endregion

// #region scorer-tests

func TestScore_Formula(t *testing.T) {
	c := twoStrategyCatalog(t)
	s := NewScorer(c)

	scores := s.Score(learner.Profile{MetacognitiveAwareness: 0.5}, learner.ObjectiveProblemSolving, learner.Context{})

	a, ok := scores.Get("A")
	require.True(t, ok)
	assert.InDelta(t, 0.7+0.1+0.1, a, 1e-12)

	b, ok := scores.Get("B")
	require.True(t, ok)
	assert.InDelta(t, 0.8, b, 1e-12, "no context match means no bonus")

	assert.Equal(t, StageFitness, scores.Stage())
	assert.Equal(t, []string{"A", "B"}, scores.Names())
}

func TestScore_AlwaysBounded(t *testing.T) {
	s := NewScorer(catalog.Default())
	objectives := []learner.Objective{
		learner.ObjectiveConceptualUnderstanding, learner.ObjectiveFactRetention,
		learner.ObjectiveProblemSolving, "unmatched_objective",
	}
	for _, awareness := range []float64{-3, 0, 0.25, 0.5, 0.75, 1, 7} {
		for _, obj := range objectives {
			scores := s.Score(learner.Profile{MetacognitiveAwareness: awareness}, obj, learner.Context{})
			for _, e := range scores.Entries() {
				assert.GreaterOrEqual(t, e.Score, 0.0, "%s awareness=%v", e.Name, awareness)
				assert.LessOrEqual(t, e.Score, 1.0, "%s awareness=%v", e.Name, awareness)
			}
		}
	}
}

func TestScore_FullAwarenessAndMatchClipsToOne(t *testing.T) {
	c := twoStrategyCatalog(t)
	scores := NewScorer(c).Score(learner.Profile{MetacognitiveAwareness: 1}, learner.ObjectiveProblemSolving, learner.Context{})
	a, _ := scores.Get("A")
	assert.Equal(t, 1.0, a)
}

// #endregion

// #region adjuster-tests

func TestAdjust_HighLoadDampsDemanding(t *testing.T) {
	c := twoStrategyCatalog(t)
	base := NewScorer(c).Score(learner.Profile{MetacognitiveAwareness: 0.3}, learner.ObjectiveProblemSolving, learner.Context{})

	adjusted, err := NewLoadAdjuster(c, ClipEachStage).Adjust(base, &learner.LoadState{TotalLoad: 0.9}, learner.Profile{})
	require.NoError(t, err)

	baseA, _ := base.Get("A")
	baseB, _ := base.Get("B")
	adjA, _ := adjusted.Get("A")
	adjB, _ := adjusted.Get("B")

	assert.Equal(t, 0.8*baseA, adjA)
	assert.Equal(t, baseB, adjB)
	assert.Equal(t, StageLoadAdjusted, adjusted.Stage())
}

func TestAdjust_InputUntouched(t *testing.T) {
	c := twoStrategyCatalog(t)
	base := NewScorer(c).Score(learner.Profile{MetacognitiveAwareness: 0.3}, learner.ObjectiveProblemSolving, learner.Context{})
	before := base.Map()

	_, err := NewLoadAdjuster(c, ClipEachStage).Adjust(base, &learner.LoadState{TotalLoad: 0.95}, learner.Profile{})
	require.NoError(t, err)

	assert.Equal(t, before, base.Map())
	assert.Equal(t, StageFitness, base.Stage())
}

func TestLoadFactor(t *testing.T) {
	tests := []struct {
		name         string
		load, demand float64
		want         float64
	}{
		{"overload-demanding", 0.9, 0.8, 0.8},
		{"overload-boundary-load", 0.7, 0.8, 1},
		{"overload-boundary-demand", 0.9, 0.6, 1},
		{"underload-demanding", 0.2, 0.8, 1.2},
		{"underload-boundary-demand", 0.2, 0.7, 1},
		{"underload-moderate", 0.2, 0.65, 1},
		{"neutral", 0.5, 0.9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoadFactor(tt.load, tt.demand))
		})
	}
}

func TestAdjust_DefaultLoadIsNeutral(t *testing.T) {
	c := twoStrategyCatalog(t)
	base := NewScorer(c).Score(learner.Profile{}, learner.ObjectiveProblemSolving, learner.Context{})
	adjusted, err := NewLoadAdjuster(c, ClipEachStage).Adjust(base, nil, learner.Profile{})
	require.NoError(t, err)
	assert.Equal(t, base.Map(), adjusted.Map())
}

func TestAdjust_ClipPolicy(t *testing.T) {
	c := twoStrategyCatalog(t)
	base := NewScorer(c).Score(learner.Profile{MetacognitiveAwareness: 1}, learner.ObjectiveProblemSolving, learner.Context{})
	low := &learner.LoadState{TotalLoad: 0.1}

	clipped, err := NewLoadAdjuster(c, ClipEachStage).Adjust(base, low, learner.Profile{})
	require.NoError(t, err)
	a, _ := clipped.Get("A")
	assert.Equal(t, 1.0, a)

	raw, err := NewLoadAdjuster(c, ClipFinalOnly).Adjust(base, low, learner.Profile{})
	require.NoError(t, err)
	a, _ = raw.Get("A")
	assert.InDelta(t, 1.2, a, 1e-12)
}

func TestAdjust_UnknownStrategy(t *testing.T) {
	c := twoStrategyCatalog(t)
	foreign := NewScoreMap(StageFitness, []Entry{{Name: "ghost", Score: 0.9}})
	_, err := NewLoadAdjuster(c, ClipEachStage).Adjust(foreign, nil, learner.Profile{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestAdjust_RejectsWrongStage(t *testing.T) {
	c := twoStrategyCatalog(t)
	m := NewScoreMap(StagePersonalized, []Entry{{Name: "A", Score: 0.9}})
	_, err := NewLoadAdjuster(c, ClipEachStage).Adjust(m, nil, learner.Profile{})
	assert.ErrorIs(t, err, ErrStageOrder)
}

// #endregion

// #region personalizer-tests

func TestPersonalize_NeutralFlexibilityAndRepertoire(t *testing.T) {
	c := twoStrategyCatalog(t)
	profile := learner.Profile{CognitiveFlexibility: 0.5, StrategyRepertoire: []string{"A"}}

	base := NewScorer(c).Score(profile, learner.ObjectiveFactRetention, learner.Context{})
	adjusted, err := NewLoadAdjuster(c, ClipEachStage).Adjust(base, nil, profile)
	require.NoError(t, err)

	assert.Equal(t, 1.0, FlexibilityFactor(0.5))

	personal, err := NewPersonalizer(ClipEachStage).Personalize(adjusted, profile)
	require.NoError(t, err)

	adjA, _ := adjusted.Get("A")
	adjB, _ := adjusted.Get("B")
	gotA, _ := personal.Get("A")
	gotB, _ := personal.Get("B")

	assert.Equal(t, adjA*1.1, gotA)
	assert.Equal(t, adjB, gotB)
	assert.Equal(t, StagePersonalized, personal.Stage())
}

func TestPersonalize_FlexibilityAppliesToAll(t *testing.T) {
	in := NewScoreMap(StageLoadAdjusted, []Entry{{Name: "A", Score: 0.5}, {Name: "B", Score: 0.6}})
	out, err := NewPersonalizer(ClipEachStage).Personalize(in, learner.Profile{CognitiveFlexibility: 1})
	require.NoError(t, err)

	a, _ := out.Get("A")
	b, _ := out.Get("B")
	assert.InDelta(t, 0.5*1.1, a, 1e-12)
	assert.InDelta(t, 0.6*1.1, b, 1e-12)

	out, err = NewPersonalizer(ClipEachStage).Personalize(in, learner.Profile{CognitiveFlexibility: 0})
	require.NoError(t, err)
	a, _ = out.Get("A")
	assert.InDelta(t, 0.5*0.9, a, 1e-12)
}

func TestPersonalize_ClipPolicy(t *testing.T) {
	in := NewScoreMap(StageLoadAdjusted, []Entry{{Name: "A", Score: 0.98}})
	profile := learner.Profile{CognitiveFlexibility: 1, StrategyRepertoire: []string{"A"}}

	clipped, err := NewPersonalizer(ClipEachStage).Personalize(in, profile)
	require.NoError(t, err)
	a, _ := clipped.Get("A")
	assert.Equal(t, 1.0, a)

	raw, err := NewPersonalizer(ClipFinalOnly).Personalize(in, profile)
	require.NoError(t, err)
	a, _ = raw.Get("A")
	assert.InDelta(t, 0.98*1.1*1.1, a, 1e-12)
}

func TestPersonalize_RejectsFitnessScores(t *testing.T) {
	in := NewScoreMap(StageFitness, []Entry{{Name: "A", Score: 0.5}})
	_, err := NewPersonalizer(ClipEachStage).Personalize(in, learner.Profile{})
	assert.ErrorIs(t, err, ErrStageOrder)
}

// #endregion

// #region clip-policy-tests

func TestParseClipPolicy(t *testing.T) {
	p, err := ParseClipPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ClipEachStage, p)

	p, err = ParseClipPolicy("final_only")
	require.NoError(t, err)
	assert.Equal(t, ClipFinalOnly, p)

	_, err = ParseClipPolicy("sometimes")
	assert.Error(t, err)
}

// #endregion
