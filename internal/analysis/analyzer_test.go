package analysis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

// #region helpers

func history(values ...float64) []learner.Episode {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	out := make([]learner.Episode, len(values))
	for i, v := range values {
		out[i] = learner.Episode{
			LearnerID:             "learner-1",
			StrategyEffectiveness: v,
			Timestamp:             start.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return out
}

// #endregion

// #region trajectory-tests

func TestAnalyzeTrajectory(t *testing.T) {
	a := NewAnalyzer(DefaultBaselines())

	tests := []struct {
		name        string
		history     []learner.Episode
		wantTrend   Trend
		wantPattern string
	}{
		{"empty", nil, TrendInsufficientData, PatternBaseline},
		{"improving", history(0.4, 0.4, 0.7), TrendImproving, PatternProgressive},
		{"decreasing-is-stable", history(0.7, 0.4), TrendStable, PatternPlateau},
		{"single-episode", history(0.9), TrendStable, PatternPlateau},
		{"flat", history(0.5, 0.5), TrendStable, PatternPlateau},
		{"dip-in-middle-ignored", history(0.3, 0.1, 0.1, 0.35), TrendImproving, PatternProgressive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeTrajectory("learner-1", tt.history)
			if got.Trend != tt.wantTrend {
				t.Errorf("trend: got %q, want %q", got.Trend, tt.wantTrend)
			}
			if got.Pattern != tt.wantPattern {
				t.Errorf("pattern: got %q, want %q", got.Pattern, tt.wantPattern)
			}
			if got.LearnerID != "learner-1" {
				t.Errorf("learner id: got %q", got.LearnerID)
			}
			if got.EpisodeCount != len(tt.history) {
				t.Errorf("episode count: got %d, want %d", got.EpisodeCount, len(tt.history))
			}
		})
	}
}

func TestAnalyzeTrajectory_FixedFigures(t *testing.T) {
	a := NewAnalyzer(DefaultBaselines())

	empty := a.AnalyzeTrajectory("x", nil)
	if empty.TrajectoryStrength != 0 {
		t.Errorf("empty history strength: got %v, want 0", empty.TrajectoryStrength)
	}
	if len(empty.KeyTransitions) != 0 {
		t.Errorf("empty history transitions: got %v", empty.KeyTransitions)
	}

	got := a.AnalyzeTrajectory("x", history(0.2, 0.8))
	if got.TrajectoryStrength != 0.7 {
		t.Errorf("strength: got %v, want 0.7", got.TrajectoryStrength)
	}
	if len(got.KeyTransitions) != 2 {
		t.Fatalf("expected 2 key transitions, got %v", got.KeyTransitions)
	}
	if got.FirstEffectiveness != 0.2 || got.LastEffectiveness != 0.8 {
		t.Errorf("endpoints: got %v..%v", got.FirstEffectiveness, got.LastEffectiveness)
	}

	// Result slices must not alias the baselines.
	got.KeyTransitions[0] = "mutated"
	again := a.AnalyzeTrajectory("x", history(0.2, 0.8))
	if again.KeyTransitions[0] == "mutated" {
		t.Error("key transitions alias baseline storage")
	}
}

// #endregion

// #region skills-tests

func TestIdentifySkills_IgnoresHistory(t *testing.T) {
	a := NewAnalyzer(DefaultBaselines())
	first := a.IdentifySkills(nil)
	second := a.IdentifySkills(history(0.1, 0.9, 0.5))

	if first.DevelopmentRate != 0.15 {
		t.Errorf("development rate: got %v", first.DevelopmentRate)
	}
	a1, _ := json.Marshal(first)
	a2, _ := json.Marshal(second)
	if string(a1) != string(a2) {
		t.Errorf("skill pattern depends on history:\n%s\n%s", a1, a2)
	}
	if len(first.DevelopingSkills) == 0 || len(first.MasteredSkills) == 0 || len(first.SkillGaps) == 0 {
		t.Errorf("expected all categories populated: %+v", first)
	}
}

// #endregion

// #region coherence-tests

func TestMeasureCoherence(t *testing.T) {
	tests := []struct {
		name          string
		consciousness float64
		episodes      int
		want          float64
	}{
		{"capped", 0.9, 3, 1.0},
		{"one-episode", 0.2, 1, 0.25},
		{"no-episodes", 0.4, 0, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeasureCoherence(learner.Profile{ConsciousnessLevel: tt.consciousness}, make([]learner.Episode, tt.episodes))
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// #endregion

// #region awareness-tests

func TestAnalyzeAwareness(t *testing.T) {
	a := NewAnalyzer(DefaultBaselines())

	tests := []struct {
		name     string
		realTime map[string]any
		want     float64
	}{
		{"nil-data", nil, 0.6},
		{"missing-key", map[string]any{"attention": 0.2}, 0.6},
		{"float64", map[string]any{"awareness_level": 0.85}, 0.85},
		{"int", map[string]any{"awareness_level": 1}, 1},
		{"json-number", map[string]any{"awareness_level": json.Number("0.42")}, 0.42},
		{"wrong-type", map[string]any{"awareness_level": "high"}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeAwareness(nil, tt.realTime)
			if got.CurrentLevel != tt.want {
				t.Errorf("level: got %v, want %v", got.CurrentLevel, tt.want)
			}
			if got.Stability != 0.8 || got.GrowthRate != 0.05 {
				t.Errorf("fixed figures changed: %+v", got)
			}
			if got.Dimensions != DefaultBaselines().Dimensions {
				t.Errorf("dimensions changed: %+v", got.Dimensions)
			}
		})
	}
}

// #endregion

// #region loader-tests

func TestLoadBaselines_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines.yaml")
	doc := "trajectory_strength: 0.5\ndefault_awareness: 0.4\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := LoadBaselines(path)
	if err != nil {
		t.Fatalf("LoadBaselines: %v", err)
	}
	if b.TrajectoryStrength != 0.5 || b.DefaultAwareness != 0.4 {
		t.Errorf("override not applied: %+v", b)
	}
	if b.Stability != 0.8 {
		t.Errorf("default stability lost: %v", b.Stability)
	}
}

// #endregion
