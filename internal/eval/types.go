package eval

// #region eval-config
// EvalConfig holds the checks applied to an assembled plan.
type EvalConfig struct {
	RequireBoundedScores bool    // scores must lie in [0,1]; off when stages keep raw weights
	Tolerance            float64 // float comparison slack for the synergy check
}

// DefaultEvalConfig returns the config for the clip-each-stage policy.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		RequireBoundedScores: true,
		Tolerance:            1e-9,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single invariant check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of plan validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
