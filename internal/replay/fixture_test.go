package replay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/logging"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
)

// #region helpers

func runFixture(t *testing.T, name string) (*Fixture, []ReplayResult) {
	t.Helper()
	f, err := LoadFixture(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	cfg, err := f.Config.ToEngineConfig()
	if err != nil {
		t.Fatalf("ToEngineConfig: %v", err)
	}
	e, err := engine.New(catalog.Default(), cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return f, Replay(context.Background(), e, f.Cases)
}

// #endregion helpers

// #region fixture-tests

// TestFixture_EachStageSession is the primary regression test: if scoring
// constants or tie-breaking change, the expected selections drift.
func TestFixture_EachStageSession(t *testing.T) {
	f, results := runFixture(t, "each_stage_session.json")

	for _, msg := range Compare(results, f.ExpectedResults) {
		t.Error(msg)
	}

	s := Summarize(results)
	if s.TotalCases != 3 || s.Adapted != 3 || s.Errors != 0 || s.Nondeterministic != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}

// TestFixture_FinalOnlySession checks that raw weights change the ranking
// once per-stage clipping no longer saturates the top strategies.
func TestFixture_FinalOnlySession(t *testing.T) {
	f, results := runFixture(t, "final_only_session.json")

	for _, msg := range Compare(results, f.ExpectedResults) {
		t.Error(msg)
	}
	if got := results[0].Plan.Prediction.PredictedEffectiveness; got != 1.0 {
		t.Errorf("prediction should clip to 1.0, got %v", got)
	}
	if s := Summarize(results); s.Selected != 1 || s.Adapted != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestFixtureConfig_RejectsUnknownPolicy(t *testing.T) {
	fc := FixtureConfig{ClipPolicy: "never"}
	if _, err := fc.ToEngineConfig(); err == nil {
		t.Fatal("expected error for unknown clip policy")
	}
}

// #endregion fixture-tests

// #region export-tests

// TestFromPlanLog records plans through the provenance log, exports them as a
// fixture, and replays the fixture.
func TestFromPlanLog(t *testing.T) {
	db, err := logging.OpenDB(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	f, err := LoadFixture(filepath.Join("testdata", "each_stage_session.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	e, err := engine.New(catalog.Default(), engine.DefaultConfig(), engine.WithRecorder(logging.NewPlanRecorder(db)))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	for _, c := range f.Cases {
		if _, err := e.SelectAdaptiveStrategy(context.Background(), c.Request); err != nil {
			t.Fatalf("select %s: %v", c.CaseID, err)
		}
	}

	entries, err := logging.ListPlans(context.Background(), db, "", 100)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	exported, err := FromPlanLog("exported", scoring.ClipEachStage, entries)
	if err != nil {
		t.Fatalf("FromPlanLog: %v", err)
	}
	if len(exported.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(exported.Cases))
	}
	if exported.Cases[0].Request.Profile.LearnerID != "learner-1" {
		t.Errorf("expected oldest case first, got %s", exported.Cases[0].Request.Profile.LearnerID)
	}

	results := Replay(context.Background(), e, exported.Cases)
	for _, msg := range Compare(results, exported.ExpectedResults) {
		t.Error(msg)
	}
}

// #endregion export-tests
