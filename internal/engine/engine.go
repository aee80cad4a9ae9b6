package engine

// #region imports
import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/eval"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/selector"
)

// #endregion

// #region engine-struct

// PlanNamespace seeds the name-based plan IDs.
var PlanNamespace = uuid.MustParse("6f1c2a9e-3b7d-5e40-9a51-0c8d7f2b4e61")

// Engine is the top-level coordinator for strategy selection and the
// history analyses. All collaborators are read-only after construction, so
// an Engine is safe for concurrent use.
type Engine struct {
	catalog      *catalog.Catalog
	scorer       *scoring.Scorer
	adjuster     *scoring.LoadAdjuster
	personalizer *scoring.Personalizer
	selector     *selector.Selector
	generator    *plan.Generator
	analyzer     *analysis.Analyzer
	harness      *eval.EvalHarness
	gate         *gate.Gate

	// fingerprint identifies the policy, catalog, templates and baselines,
	// so plans from differently configured engines never share an ID.
	fingerprint string

	recorder Recorder
	observer Observer
	log      zerolog.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithRecorder records every assembled plan to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithObserver reports measurements to o.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// #endregion

// #region constructor

// New creates a fully wired engine over c.
func New(c *catalog.Catalog, cfg Config, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, fmt.Errorf("engine: nil catalog")
	}
	policy, err := scoring.ParseClipPolicy(string(cfg.ClipPolicy))
	if err != nil {
		return nil, err
	}
	cfg.ClipPolicy = policy

	fp, err := fingerprint(c, cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:      c,
		scorer:       scoring.NewScorer(c),
		adjuster:     scoring.NewLoadAdjuster(c, policy),
		personalizer: scoring.NewPersonalizer(policy),
		selector:     selector.NewSelector(c),
		generator:    plan.NewGenerator(c, cfg.Templates),
		analyzer:     analysis.NewAnalyzer(cfg.Baselines),
		harness:      eval.NewEvalHarness(cfg.evalConfig()),
		gate:         gate.NewGate(),
		fingerprint:  fp,
		observer:     nopObserver{},
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Catalog returns the strategy catalog the engine ranks.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// #endregion

// #region select

// SelectAdaptiveStrategy runs the scoring pipeline and assembles a plan.
// Identical requests produce identical plans, including the plan ID.
func (e *Engine) SelectAdaptiveStrategy(ctx context.Context, req Request) (*plan.Plan, error) {
	start := time.Now()
	objective := req.Objective()

	fitness := e.scorer.Score(req.Profile, objective, req.Context)
	e.log.Debug().Str("stage", fitness.Stage().String()).Int("strategies", fitness.Len()).Msg("scored")

	adjusted, err := e.adjuster.Adjust(fitness, req.Load, req.Profile)
	if err != nil {
		e.observer.ObserveError("adjust")
		return nil, fmt.Errorf("adjust: %w", err)
	}
	e.log.Debug().Str("stage", adjusted.Stage().String()).Float64("load", learner.EffectiveLoad(req.Load)).Msg("adjusted")

	personalized, err := e.personalizer.Personalize(adjusted, req.Profile)
	if err != nil {
		e.observer.ObserveError("personalize")
		return nil, fmt.Errorf("personalize: %w", err)
	}

	comb, err := e.selector.Select(personalized, objective, req.Context)
	if err != nil {
		e.observer.ObserveError("select")
		return nil, err
	}
	e.log.Debug().Str("primary", comb.PrimaryStrategy).Strs("complementary", comb.ComplementaryStrategies).Msg("selected")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := e.assemble(ctx, req, personalized, comb)
	if err != nil {
		e.observer.ObserveError("assemble")
		return nil, err
	}

	if result := e.harness.Run(*p); !result.Passed {
		e.observer.ObserveError("eval")
		e.log.Error().Str("plan_id", p.ID).Str("reason", result.Reason).Msg("plan failed invariant checks")
		return nil, fmt.Errorf("%w: %s", ErrInvariant, result.Reason)
	}

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, req, *p); err != nil {
			e.log.Warn().Err(err).Str("plan_id", p.ID).Msg("record plan failed")
		}
	}

	elapsed := time.Since(start)
	e.observer.ObserveSelection(objective, comb.PrimaryStrategy, elapsed)
	e.log.Info().
		Str("plan_id", p.ID).
		Str("learner_id", p.LearnerID).
		Str("objective", string(objective)).
		Str("primary", comb.PrimaryStrategy).
		Float64("synergy", comb.CombinationSynergy).
		Float64("predicted", p.Prediction.PredictedEffectiveness).
		Dur("elapsed", elapsed).
		Msg("plan assembled")

	return p, nil
}

// assemble derives the plan artifacts from the finished combination. Each
// generator reads only the combination, the request, and the read-only
// catalog and templates, so they run concurrently.
func (e *Engine) assemble(ctx context.Context, req Request, scores scoring.ScoreMap, comb selector.Combination) (*plan.Plan, error) {
	id, err := e.PlanID(req)
	if err != nil {
		return nil, err
	}

	p := &plan.Plan{
		ID:          id,
		LearnerID:   req.Profile.LearnerID,
		Objective:   req.Objective(),
		Scores:      e.selector.Rank(scores),
		Combination: comb,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		guidance, err := e.generator.Guidance(comb, req.Profile, req.Context)
		if err != nil {
			return err
		}
		p.Guidance = guidance
		return nil
	})
	g.Go(func() error {
		p.Prediction = e.generator.Predict(comb, req.Profile, req.Context)
		return nil
	})
	g.Go(func() error {
		p.Alternatives = e.generator.Alternatives(scores, comb)
		return nil
	})
	g.Go(func() error {
		p.Triggers = e.generator.Triggers()
		return nil
	})
	g.Go(func() error {
		p.Indicators = e.generator.Indicators()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// PlanID returns the name-based UUID of req's JSON encoding under this
// engine's configuration fingerprint.
func (e *Engine) PlanID(req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("plan id: %w", err)
	}
	name := make([]byte, 0, len(e.fingerprint)+1+len(body))
	name = append(name, e.fingerprint...)
	name = append(name, ':')
	name = append(name, body...)
	return uuid.NewSHA1(PlanNamespace, name).String(), nil
}

// Fingerprint returns the hex digest of the engine configuration.
func (e *Engine) Fingerprint() string {
	return e.fingerprint
}

func fingerprint(c *catalog.Catalog, cfg Config) (string, error) {
	body, err := json.Marshal(struct {
		ClipPolicy scoring.ClipPolicy            `json:"clip_policy"`
		Strategies []catalog.StrategyDefinition `json:"strategies"`
		Templates  plan.Templates               `json:"templates"`
		Baselines  analysis.Baselines           `json:"baselines"`
	}{cfg.ClipPolicy, c.All(), cfg.Templates, cfg.Baselines})
	if err != nil {
		return "", fmt.Errorf("engine fingerprint: %w", err)
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// #endregion

// #region analyses

// AnalyzeLearningTrajectory reports the trend of a chronological history.
func (e *Engine) AnalyzeLearningTrajectory(learnerID string, history []learner.Episode) analysis.Trajectory {
	t := e.analyzer.AnalyzeTrajectory(learnerID, history)
	e.log.Debug().Str("learner_id", learnerID).Str("trend", string(t.Trend)).Int("episodes", t.EpisodeCount).Msg("trajectory")
	return t
}

// IdentifySkillPatterns returns the skill development pattern for history.
func (e *Engine) IdentifySkillPatterns(history []learner.Episode) analysis.SkillPattern {
	return e.analyzer.IdentifySkills(history)
}

// MeasureConsciousnessCoherence returns the coherence of profile over episodes.
func (e *Engine) MeasureConsciousnessCoherence(profile learner.Profile, episodes []learner.Episode) float64 {
	return analysis.MeasureCoherence(profile, episodes)
}

// AnalyzeAwarenessLevels reads the current awareness level from realTime.
func (e *Engine) AnalyzeAwarenessLevels(episodes []learner.Episode, realTime map[string]any) analysis.Awareness {
	return e.analyzer.AnalyzeAwareness(episodes, realTime)
}

// #endregion

// #region triggers

// EvaluateTriggers checks p's adaptation triggers against live signals.
func (e *Engine) EvaluateTriggers(p *plan.Plan, obs gate.Observation) gate.GateDecision {
	d := e.gate.Evaluate(p.Triggers, obs)
	e.observer.ObserveDecision(d)
	if d.Adapt() {
		e.log.Info().Str("plan_id", p.ID).Str("action", d.Action).Int("fired", len(d.Fired)).Msg("adaptation triggered")
	}
	return d
}

// #endregion
