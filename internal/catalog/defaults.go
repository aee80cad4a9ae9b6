package catalog

import "github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"

// #region strategy-names

const (
	SelfExplanation        = "self_explanation"
	ElaborativeInterrogate = "elaborative_interrogation"
	RetrievalPractice      = "retrieval_practice"
	SpacedRepetition       = "spaced_repetition"
	InterleavedPractice    = "interleaved_practice"
	ConceptMapping         = "concept_mapping"
	DualCoding             = "dual_coding"
	MetacognitiveReflect   = "metacognitive_reflection"
)

// #endregion

// #region strategy-definitions

// builtins is the built-in strategy set, in enumeration order.
var builtins = []StrategyDefinition{
	{
		Name:        SelfExplanation,
		Description: "Explain each step of the material in your own words while studying it",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveConceptualUnderstanding,
			learner.ObjectiveProblemSolving,
		},
		CognitiveDemands: 0.6,
	},
	{
		Name:        ElaborativeInterrogate,
		Description: "Ask and answer why and how questions that connect new facts to prior knowledge",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveConceptualUnderstanding,
			learner.ObjectiveCriticalThinking,
		},
		CognitiveDemands: 0.7,
	},
	{
		Name:        RetrievalPractice,
		Description: "Recall material from memory without looking at the source",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveFactRetention,
			learner.ObjectiveTransfer,
		},
		CognitiveDemands: 0.5,
	},
	{
		Name:        SpacedRepetition,
		Description: "Revisit material at increasing intervals across sessions",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveFactRetention,
			learner.ObjectiveSkillAcquisition,
		},
		CognitiveDemands: 0.3,
	},
	{
		Name:        InterleavedPractice,
		Description: "Mix problems of different types within one practice session",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveProblemSolving,
			learner.ObjectiveSkillAcquisition,
			learner.ObjectiveTransfer,
		},
		CognitiveDemands: 0.8,
	},
	{
		Name:        ConceptMapping,
		Description: "Draw the relationships between key concepts as a labelled graph",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveConceptualUnderstanding,
			learner.ObjectiveCriticalThinking,
		},
		CognitiveDemands: 0.65,
	},
	{
		Name:        DualCoding,
		Description: "Pair verbal material with diagrams, timelines or other visuals",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveConceptualUnderstanding,
			learner.ObjectiveFactRetention,
		},
		CognitiveDemands: 0.4,
	},
	{
		Name:        MetacognitiveReflect,
		Description: "Plan, monitor and evaluate your own learning process before and after each session",
		EffectivenessContexts: []learner.Objective{
			learner.ObjectiveCriticalThinking,
			learner.ObjectiveTransfer,
			learner.ObjectiveSkillAcquisition,
		},
		CognitiveDemands: 0.75,
	},
}

// #endregion

// #region default

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtins...)
	if err != nil {
		panic("catalog: invalid built-in definitions: " + err.Error())
	}
	return c
}

// #endregion
