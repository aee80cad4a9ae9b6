package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/logging"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/replay"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
)

// #region main

func main() {
	var (
		dbPath, outPath, learnerID, policy, description string
		last                                             int
	)

	cmd := &cobra.Command{
		Use:           "fixture-export --db path/to/db --out path/to/fixture.json",
		Short:         "Export recorded plans as a replay fixture",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), dbPath, learnerID, last, policy, description, outPath)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to strategy.db")
	cmd.Flags().StringVar(&outPath, "out", "", "output fixture JSON path")
	cmd.Flags().IntVar(&last, "last", 4, "number of most recent plans to export")
	cmd.Flags().StringVar(&learnerID, "learner", "", "export only this learner's plans")
	cmd.Flags().StringVar(&policy, "clip-policy", string(scoring.ClipEachStage), "clip policy the plans were recorded under")
	cmd.Flags().StringVar(&description, "description", "", "fixture description")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("out")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(ctx context.Context, dbPath, learnerID string, last int, policy, description, outPath string) error {
	clip, err := scoring.ParseClipPolicy(policy)
	if err != nil {
		return err
	}

	db, err := logging.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := logging.ListPlans(ctx, db, learnerID, last)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no plans found in plan_log")
	}

	if description == "" {
		description = fmt.Sprintf("Exported from %s: %d most recent plans", dbPath, len(entries))
	}
	f, err := replay.FromPlanLog(description, clip, entries)
	if err != nil {
		return err
	}
	if len(f.Cases) == 0 {
		return fmt.Errorf("no plans with a stored request among the last %d", len(entries))
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Printf("Exported %d cases to %s\n", len(f.Cases), outPath)
	return nil
}

// #endregion extract
