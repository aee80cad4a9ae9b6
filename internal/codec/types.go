package codec

import (
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

// #region messages
// TrajectoryRequest asks for the trajectory and skill pattern of a history.
type TrajectoryRequest struct {
	LearnerID string            `json:"learner_id"`
	History   []learner.Episode `json:"history"`
}

// TrajectoryResponse pairs the trajectory with the skill pattern.
type TrajectoryResponse struct {
	Trajectory analysis.Trajectory   `json:"trajectory"`
	Skills     analysis.SkillPattern `json:"skill_development"`
}

// CoherenceRequest asks for the consciousness coherence of a profile.
type CoherenceRequest struct {
	Profile  learner.Profile   `json:"profile"`
	Episodes []learner.Episode `json:"episodes"`
}

// CoherenceResponse carries the coherence value.
type CoherenceResponse struct {
	Coherence float64 `json:"coherence"`
}

// AwarenessRequest carries real-time signals for the awareness analysis.
type AwarenessRequest struct {
	Episodes     []learner.Episode `json:"episodes"`
	RealTimeData map[string]any    `json:"real_time_data"`
}

// TriggerRequest evaluates a plan's triggers against observed signals.
type TriggerRequest struct {
	PlanID      string           `json:"plan_id"`
	Triggers    []plan.Trigger   `json:"adaptation_triggers"`
	Observation gate.Observation `json:"observation"`
}

// #endregion messages
