package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

func TestDefault_StableOrder(t *testing.T) {
	c := Default()
	want := []string{
		SelfExplanation, ElaborativeInterrogate, RetrievalPractice, SpacedRepetition,
		InterleavedPractice, ConceptMapping, DualCoding, MetacognitiveReflect,
	}
	assert.Equal(t, want, c.Names())
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, c.Names(), "enumeration order must not change between calls")
	}
}

func TestGet(t *testing.T) {
	c := Default()

	def, err := c.Get(RetrievalPractice)
	require.NoError(t, err)
	assert.Equal(t, RetrievalPractice, def.Name)
	assert.True(t, def.EffectiveFor(learner.ObjectiveFactRetention))
	assert.False(t, def.EffectiveFor(learner.ObjectiveCriticalThinking))

	_, err = c.Get("speed_reading")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "mutated"
	all[0].EffectivenessContexts[0] = "mutated"

	def, err := c.Get(SelfExplanation)
	require.NoError(t, err)
	assert.Equal(t, SelfExplanation, c.All()[0].Name)
	assert.NotEqual(t, learner.Objective("mutated"), def.EffectivenessContexts[0])
}

func TestNew_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		defs []StrategyDefinition
	}{
		{"duplicate", []StrategyDefinition{{Name: "a"}, {Name: "a"}}},
		{"empty-name", []StrategyDefinition{{Name: ""}}},
		{"demand-high", []StrategyDefinition{{Name: "a", CognitiveDemands: 1.1}}},
		{"demand-negative", []StrategyDefinition{{Name: "a", CognitiveDemands: -0.1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs...)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestRank(t *testing.T) {
	c, err := New(StrategyDefinition{Name: "a"}, StrategyDefinition{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Rank("a"))
	assert.Equal(t, 1, c.Rank("b"))
	assert.Equal(t, -1, c.Rank("z"))
	assert.Equal(t, 2, c.Len())
}

func TestLoadFile(t *testing.T) {
	doc := `
strategies:
  - name: b_strategy
    description: second in alphabet, first in file
    effectiveness_contexts: [fact_retention]
    cognitive_demands: 0.8
  - name: a_strategy
    description: first in alphabet
    effectiveness_contexts: [problem_solving, transfer]
    cognitive_demands: 0.3
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"b_strategy", "a_strategy"}, c.Names())

	def, err := c.Get("a_strategy")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, def.CognitiveDemands, 1e-9)
	assert.True(t, def.EffectiveFor(learner.ObjectiveTransfer))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
