package analysis

// #region trend

// Trend is the coarse direction of a learning trajectory.
type Trend string

const (
	TrendInsufficientData Trend = "insufficient_data"
	TrendImproving        Trend = "improving"
	TrendStable           Trend = "stable"
)

// #endregion

// #region trajectory

// Pattern labels for trajectories.
const (
	PatternBaseline    = "baseline"
	PatternProgressive = "progressive"
	PatternPlateau     = "plateau"
)

// Trajectory is the result of a learning trajectory analysis.
type Trajectory struct {
	LearnerID          string   `json:"learner_id"`
	Trend              Trend    `json:"trend"`
	Pattern            string   `json:"pattern"`
	KeyTransitions     []string `json:"key_transitions"`
	TrajectoryStrength float64  `json:"trajectory_strength"`
	EpisodeCount       int      `json:"episode_count"`
	FirstEffectiveness float64  `json:"first_effectiveness"`
	LastEffectiveness  float64  `json:"last_effectiveness"`
}

// #endregion

// #region skill-pattern

// SkillPattern categorizes a learner's metacognitive skills.
type SkillPattern struct {
	DevelopingSkills []string `json:"developing_skills" yaml:"developing_skills"`
	MasteredSkills   []string `json:"mastered_skills" yaml:"mastered_skills"`
	SkillGaps        []string `json:"skill_gaps" yaml:"skill_gaps"`
	DevelopmentRate  float64  `json:"development_rate" yaml:"development_rate"`
}

// #endregion

// #region awareness

// AwarenessDimensions breaks awareness into three facets.
type AwarenessDimensions struct {
	SelfAwareness     float64 `json:"self_awareness" yaml:"self_awareness"`
	TaskAwareness     float64 `json:"task_awareness" yaml:"task_awareness"`
	StrategyAwareness float64 `json:"strategy_awareness" yaml:"strategy_awareness"`
}

// Awareness is the result of an awareness level analysis.
type Awareness struct {
	CurrentLevel float64             `json:"current_level"`
	Dimensions   AwarenessDimensions `json:"dimensions"`
	Stability    float64             `json:"stability"`
	GrowthRate   float64             `json:"growth_rate"`
}

// #endregion

// #region baselines

// Baselines holds the fixed figures the analyzers report.
type Baselines struct {
	KeyTransitions     []string            `yaml:"key_transitions"`
	TrajectoryStrength float64             `yaml:"trajectory_strength"`
	Skills             SkillPattern        `yaml:"skills"`
	DefaultAwareness   float64             `yaml:"default_awareness"`
	Dimensions         AwarenessDimensions `yaml:"dimensions"`
	Stability          float64             `yaml:"stability"`
	GrowthRate         float64             `yaml:"growth_rate"`
}

// DefaultBaselines returns the built-in analyzer figures.
func DefaultBaselines() Baselines {
	return Baselines{
		KeyTransitions: []string{
			"strategy_awareness_emerged",
			"self_monitoring_established",
		},
		TrajectoryStrength: 0.7,
		Skills: SkillPattern{
			DevelopingSkills: []string{"self_monitoring", "strategy_selection"},
			MasteredSkills:   []string{"goal_setting"},
			SkillGaps:        []string{"self_evaluation"},
			DevelopmentRate:  0.15,
		},
		DefaultAwareness: 0.6,
		Dimensions: AwarenessDimensions{
			SelfAwareness:     0.7,
			TaskAwareness:     0.65,
			StrategyAwareness: 0.6,
		},
		Stability:  0.8,
		GrowthRate: 0.05,
	}
}

// #endregion
