package logging

import "time"

// #region plan-entry
// PlanEntry is a single row in the plan_log table.
type PlanEntry struct {
	PlanID          string
	LearnerID       string
	Objective       string
	PrimaryStrategy string
	Complementary   string // comma-separated, empty = none
	Synergy         float64
	Predicted       float64
	RequestJSON     string
	PlanJSON        string
	CreatedAt       time.Time
}

// #endregion plan-entry
