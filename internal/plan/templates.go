package plan

// #region imports
import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region templates

// Templates holds the static text and records every generator expands.
// Placeholders: {strategy}, {description}, {complement},
// {complement_description}, {score}.
type Templates struct {
	PrimaryGuidance     string      `yaml:"primary_guidance"`
	Steps               []string    `yaml:"steps"`
	SuccessIndicators   []string    `yaml:"success_indicators"`
	CommonPitfalls      []string    `yaml:"common_pitfalls"`
	IntegrationNote     string      `yaml:"integration_note"`
	AlternativeReason   string      `yaml:"alternative_reason"`
	TimeToEffectiveness string      `yaml:"time_to_effectiveness"`
	Triggers            []Trigger   `yaml:"triggers"`
	Indicators          []Indicator `yaml:"indicators"`
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		PrimaryGuidance: "Use {strategy} as your main approach: {description}.",
		Steps: []string{
			"Before the session, set a concrete goal and decide how you will apply {strategy}.",
			"During the session, apply {strategy} to each new section and pause to check your understanding.",
			"After the session, rate how well {strategy} worked and note what to change next time.",
		},
		SuccessIndicators: []string{
			"You can explain the material without looking at your notes",
			"Your self-assessed confidence matches your quiz results",
			"You can apply the material to an unfamiliar problem",
		},
		CommonPitfalls: []string{
			"Applying the strategy mechanically without checking understanding",
			"Switching strategies before giving the current one a fair trial",
			"Overestimating mastery after a single successful session",
		},
		IntegrationNote:     "Combine {complement} with {strategy}: {complement_description}.",
		AlternativeReason:   "Scored {score}; {description}.",
		TimeToEffectiveness: "2-3 learning sessions",
		Triggers: []Trigger{
			{Name: TriggerPerformanceDecline, Threshold: 0.3, Action: "switch_to_alternative_strategy"},
			{Name: TriggerCognitiveOverload, Threshold: 0.8, Action: "reduce_strategy_complexity"},
			{Name: TriggerMasteryAchieved, Threshold: 0.9, Action: "advance_to_higher_order_strategy"},
		},
		Indicators: []Indicator{
			{Name: "comprehension_rate", Target: 0.8, Measurement: "share of self-check questions answered correctly"},
			{Name: "retention_quality", Target: 0.75, Measurement: "delayed recall accuracy after 48 hours"},
			{Name: "application_success", Target: 0.7, Measurement: "share of transfer problems solved without hints"},
		},
	}
}

// #endregion

// #region loader

// LoadTemplates reads a YAML override file. Fields absent from the file
// keep their default values. The prediction confidence is not a template
// field and cannot be overridden.
func LoadTemplates(path string) (Templates, error) {
	t := DefaultTemplates()
	data, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("read templates %s: %w", path, err)
	}
	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Templates{}, fmt.Errorf("parse templates %s: %w", path, err)
	}
	t.merge(override)
	if len(t.Steps) != 3 {
		return Templates{}, fmt.Errorf("templates %s: want 3 steps, got %d", path, len(t.Steps))
	}
	return t, nil
}

func (t *Templates) merge(o Templates) {
	if o.PrimaryGuidance != "" {
		t.PrimaryGuidance = o.PrimaryGuidance
	}
	if len(o.Steps) > 0 {
		t.Steps = o.Steps
	}
	if len(o.SuccessIndicators) > 0 {
		t.SuccessIndicators = o.SuccessIndicators
	}
	if len(o.CommonPitfalls) > 0 {
		t.CommonPitfalls = o.CommonPitfalls
	}
	if o.IntegrationNote != "" {
		t.IntegrationNote = o.IntegrationNote
	}
	if o.AlternativeReason != "" {
		t.AlternativeReason = o.AlternativeReason
	}
	if o.TimeToEffectiveness != "" {
		t.TimeToEffectiveness = o.TimeToEffectiveness
	}
	if len(o.Triggers) > 0 {
		t.Triggers = o.Triggers
	}
	if len(o.Indicators) > 0 {
		t.Indicators = o.Indicators
	}
}

// #endregion
