package engine

// #region imports
import (
	"context"
	"errors"
	"time"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/eval"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
)

// #endregion

// #region errors

// ErrInvariant is returned when an assembled plan fails the invariant checks.
// It indicates a bug in the pipeline, never bad input.
var ErrInvariant = errors.New("plan invariant violated")

// #endregion

// #region request

// Request is the input to SelectAdaptiveStrategy. Load is optional; a nil
// Load means learner.DefaultLoad.
type Request struct {
	Profile learner.Profile    `json:"profile"`
	Context learner.Context    `json:"context"`
	Load    *learner.LoadState `json:"load,omitempty"`
}

// Objective returns the learning objective carried by the request context.
func (r Request) Objective() learner.Objective {
	return r.Context.Objective
}

// Validate checks every bounded field of the request.
func (r Request) Validate() error {
	if err := r.Profile.Validate(); err != nil {
		return err
	}
	if err := r.Context.Validate(); err != nil {
		return err
	}
	if r.Load != nil {
		return r.Load.Validate()
	}
	return nil
}

// #endregion

// #region config

// Config holds the engine's tunable records.
type Config struct {
	ClipPolicy scoring.ClipPolicy
	Templates  plan.Templates
	Baselines  analysis.Baselines
}

// DefaultConfig returns the built-in templates and baselines with per-stage
// clipping.
func DefaultConfig() Config {
	return Config{
		ClipPolicy: scoring.ClipEachStage,
		Templates:  plan.DefaultTemplates(),
		Baselines:  analysis.DefaultBaselines(),
	}
}

// evalConfig derives the invariant checks from the clip policy. Under
// ClipFinalOnly intermediate scores are raw weights and may exceed 1.
func (c Config) evalConfig() eval.EvalConfig {
	cfg := eval.DefaultEvalConfig()
	cfg.RequireBoundedScores = c.ClipPolicy != scoring.ClipFinalOnly
	return cfg
}

// #endregion

// #region collaborators

// Recorder persists assembled plans. Failures are logged by the engine and
// never returned to the caller.
type Recorder interface {
	Record(ctx context.Context, req Request, p plan.Plan) error
}

// Observer receives per-request measurements.
type Observer interface {
	ObserveSelection(objective learner.Objective, primary string, elapsed time.Duration)
	ObserveError(stage string)
	ObserveDecision(d gate.GateDecision)
}

type nopObserver struct{}

func (nopObserver) ObserveSelection(learner.Objective, string, time.Duration) {}
func (nopObserver) ObserveError(string)                                       {}
func (nopObserver) ObserveDecision(gate.GateDecision)                         {}

// #endregion
