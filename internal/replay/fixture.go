package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/logging"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Config          FixtureConfig           `json:"config"`
	Cases           []FixtureCase           `json:"cases"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureConfig selects the engine configuration for a replay run.
type FixtureConfig struct {
	ClipPolicy string `json:"clip_policy"`
}

// FixtureCase is one recorded request, optionally followed by observed
// signals for the trigger gate.
type FixtureCase struct {
	CaseID      string            `json:"case_id"`
	Request     engine.Request    `json:"request"`
	Observation *gate.Observation `json:"observation,omitempty"`
}

// FixtureExpectedResult captures the expected selection per case. An empty
// Action skips the gate check.
type FixtureExpectedResult struct {
	CaseID        string   `json:"case_id"`
	Primary       string   `json:"primary_strategy"`
	Complementary []string `json:"complementary_strategies"`
	Action        string   `json:"action,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToEngineConfig converts a FixtureConfig to an engine configuration with
// the built-in templates and baselines.
func (fc *FixtureConfig) ToEngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	policy, err := scoring.ParseClipPolicy(fc.ClipPolicy)
	if err != nil {
		return cfg, err
	}
	cfg.ClipPolicy = policy
	return cfg, nil
}

// #endregion fixture-loader

// #region fixture-export

// FromPlanLog builds a fixture from plan_log entries, oldest first. The
// recorded selections become the expected results. Entries without a
// stored request are skipped.
func FromPlanLog(description string, policy scoring.ClipPolicy, entries []logging.PlanEntry) (*Fixture, error) {
	f := &Fixture{
		Description: description,
		Config:      FixtureConfig{ClipPolicy: string(policy)},
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.RequestJSON == "" || e.PlanJSON == "" {
			continue
		}
		var req engine.Request
		if err := json.Unmarshal([]byte(e.RequestJSON), &req); err != nil {
			return nil, fmt.Errorf("decode request %s: %w", e.PlanID, err)
		}
		var p plan.Plan
		if err := json.Unmarshal([]byte(e.PlanJSON), &p); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", e.PlanID, err)
		}
		f.Cases = append(f.Cases, FixtureCase{CaseID: e.PlanID, Request: req})
		f.ExpectedResults = append(f.ExpectedResults, FixtureExpectedResult{
			CaseID:        e.PlanID,
			Primary:       p.Combination.PrimaryStrategy,
			Complementary: p.Combination.ComplementaryStrategies,
		})
	}
	return f, nil
}

// #endregion fixture-export
