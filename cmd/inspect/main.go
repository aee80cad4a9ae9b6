package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/logging"
)

// #region main

func main() {
	var (
		dbPath    string
		last      int
		learnerID string
		planID    string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:           "inspect --db path/to/strategy.db",
		Short:         "List recorded strategy plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := logging.OpenDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := logging.ListPlans(cmd.Context(), db, learnerID, last)
			if err != nil {
				return err
			}
			if planID != "" {
				return runDetailMode(entries, planID)
			}
			return runListMode(entries, jsonOut)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to strategy.db")
	cmd.Flags().IntVar(&last, "last", 20, "show N most recent plans")
	cmd.Flags().StringVar(&learnerID, "learner", "", "filter to one learner")
	cmd.Flags().StringVar(&planID, "plan", "", "print the full JSON of one plan among the listed entries")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON instead of table")
	_ = cmd.MarkFlagRequired("db")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	PlanID        string  `json:"plan_id"`
	LearnerID     string  `json:"learner_id,omitempty"`
	Objective     string  `json:"objective"`
	Primary       string  `json:"primary_strategy"`
	Complementary string  `json:"complementary,omitempty"`
	Synergy       float64 `json:"synergy"`
	Predicted     float64 `json:"predicted"`
	CreatedAt     string  `json:"created_at"`
}

func runListMode(entries []logging.PlanEntry, jsonOut bool) error {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no plans found")
		return nil
	}

	// ListPlans returns newest first; print chronologically.
	rows := make([]listRow, len(entries))
	for i, e := range entries {
		rows[len(entries)-1-i] = listRow{
			PlanID:        e.PlanID,
			LearnerID:     e.LearnerID,
			Objective:     e.Objective,
			Primary:       e.PrimaryStrategy,
			Complementary: e.Complementary,
			Synergy:       e.Synergy,
			Predicted:     e.Predicted,
			CreatedAt:     e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-10s %-12s %-24s %-26s %-7s %-9s %s\n",
		"Plan", "Learner", "Objective", "Primary", "Synergy", "Predicted", "Created")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range rows {
		fmt.Printf("%-10s %-12s %-24s %-26s %-7.3f %-9.3f %s\n",
			shortID(r.PlanID), r.LearnerID, r.Objective, r.Primary, r.Synergy, r.Predicted, r.CreatedAt)
		if r.Complementary != "" {
			fmt.Printf("%-10s   + %s\n", "", strings.ReplaceAll(r.Complementary, ",", ", "))
		}
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(entries []logging.PlanEntry, planID string) error {
	for _, e := range entries {
		if e.PlanID != planID && !strings.HasPrefix(e.PlanID, planID) {
			continue
		}
		if e.PlanJSON == "" {
			return fmt.Errorf("plan %s has no stored JSON", e.PlanID)
		}
		var v any
		if err := json.Unmarshal([]byte(e.PlanJSON), &v); err != nil {
			return fmt.Errorf("decode plan %s: %w", e.PlanID, err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("plan %s not found in the listed entries", planID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion detail-mode
