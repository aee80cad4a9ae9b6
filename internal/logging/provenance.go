package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS plan_log (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	plan_id          TEXT NOT NULL,
	learner_id       TEXT,
	objective        TEXT NOT NULL,
	primary_strategy TEXT NOT NULL,
	complementary    TEXT,
	synergy          REAL NOT NULL,
	predicted        REAL NOT NULL,
	request_json     TEXT,
	plan_json        TEXT,
	created_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_log_learner ON plan_log(learner_id, created_at);
`

// #endregion schema

// #region open
// OpenDB opens a SQLite database and creates the plan_log table.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the plan_log table if needed.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// #endregion open

// #region log-plan
// LogPlan writes a plan entry to the plan_log table.
func LogPlan(ctx context.Context, db *sql.DB, entry PlanEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO plan_log (plan_id, learner_id, objective, primary_strategy, complementary, synergy, predicted, request_json, plan_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.PlanID,
		nullIfEmpty(entry.LearnerID),
		entry.Objective,
		entry.PrimaryStrategy,
		nullIfEmpty(entry.Complementary),
		entry.Synergy,
		entry.Predicted,
		nullIfEmpty(entry.RequestJSON),
		nullIfEmpty(entry.PlanJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log plan: %w", err)
	}
	return nil
}

// #endregion log-plan

// #region list-plans
// ListPlans returns up to limit entries, newest first. learnerID filters
// when non-empty.
func ListPlans(ctx context.Context, db *sql.DB, learnerID string, limit int) ([]PlanEntry, error) {
	query := `SELECT plan_id, learner_id, objective, primary_strategy, complementary, synergy, predicted, request_json, plan_json, created_at
		FROM plan_log`
	var args []any
	if learnerID != "" {
		query += ` WHERE learner_id = ?`
		args = append(args, learnerID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []PlanEntry
	for rows.Next() {
		var e PlanEntry
		var learnerID, comp, reqJSON, planJSON sql.NullString
		var created string
		if err := rows.Scan(&e.PlanID, &learnerID, &e.Objective, &e.PrimaryStrategy, &comp,
			&e.Synergy, &e.Predicted, &reqJSON, &planJSON, &created); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		e.LearnerID = learnerID.String
		e.Complementary = comp.String
		e.RequestJSON = reqJSON.String
		e.PlanJSON = planJSON.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion list-plans

// #region recorder
// PlanRecorder persists assembled plans to plan_log.
type PlanRecorder struct {
	db *sql.DB
}

// NewPlanRecorder creates a recorder writing to db.
func NewPlanRecorder(db *sql.DB) *PlanRecorder {
	return &PlanRecorder{db: db}
}

// Record logs p together with the request that produced it.
func (r *PlanRecorder) Record(ctx context.Context, req engine.Request, p plan.Plan) error {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return LogPlan(ctx, r.db, PlanEntry{
		PlanID:          p.ID,
		LearnerID:       p.LearnerID,
		Objective:       string(p.Objective),
		PrimaryStrategy: p.Combination.PrimaryStrategy,
		Complementary:   strings.Join(p.Combination.ComplementaryStrategies, ","),
		Synergy:         p.Combination.CombinationSynergy,
		Predicted:       p.Prediction.PredictedEffectiveness,
		RequestJSON:     string(reqBody),
		PlanJSON:        string(body),
	})
}

// #endregion recorder

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
