package learner

import (
	"errors"
	"testing"
)

func TestProfileKnows(t *testing.T) {
	p := Profile{StrategyRepertoire: []string{"self_explanation", "retrieval_practice"}}
	if !p.Knows("retrieval_practice") {
		t.Error("expected retrieval_practice to be known")
	}
	if p.Knows("concept_mapping") {
		t.Error("concept_mapping should not be known")
	}
}

func TestEffectiveLoad_DefaultsWhenAbsent(t *testing.T) {
	if got := EffectiveLoad(nil); got != 0.5 {
		t.Errorf("expected default 0.5, got %v", got)
	}
	if got := EffectiveLoad(&LoadState{TotalLoad: 0.9}); got != 0.9 {
		t.Errorf("expected 0.9, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"profile-ok", Profile{MetacognitiveAwareness: 0.4, CognitiveFlexibility: 1, ConsciousnessLevel: 0}.Validate(), false},
		{"profile-awareness-high", Profile{MetacognitiveAwareness: 1.2}.Validate(), true},
		{"profile-flex-negative", Profile{CognitiveFlexibility: -0.1}.Validate(), true},
		{"load-ok", LoadState{TotalLoad: 0.7}.Validate(), false},
		{"load-high", LoadState{TotalLoad: 1.5}.Validate(), true},
		{"context-ok", Context{ComplexityLevel: 0.3}.Validate(), false},
		{"context-negative", Context{ComplexityLevel: -1}.Validate(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				if !errors.Is(tt.err, ErrOutOfRange) {
					t.Fatalf("expected ErrOutOfRange, got %v", tt.err)
				}
				return
			}
			if tt.err != nil {
				t.Fatalf("unexpected error: %v", tt.err)
			}
		})
	}
}

func TestObjectiveKnown(t *testing.T) {
	for _, o := range []Objective{ObjectiveFactRetention, ObjectiveTransfer, ObjectiveCriticalThinking} {
		if !o.Known() {
			t.Errorf("%q should be known", o)
		}
	}
	for _, o := range []Objective{"", "custom_goal", "Fact_Retention"} {
		if o.Known() {
			t.Errorf("%q should not be known", o)
		}
	}
}
