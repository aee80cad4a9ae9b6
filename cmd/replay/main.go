package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/replay"
)

// #region main

func main() {
	var fixturePath, catalogPath string

	cmd := &cobra.Command{
		Use:           "replay --fixture path/to/fixture.json",
		Short:         "Replay recorded requests and compare the selections",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := runFixtureMode(cmd.Context(), fixturePath, catalogPath)
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to fixture JSON")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "strategy catalog YAML (default built-in)")
	_ = cmd.MarkFlagRequired("fixture")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// #endregion main

// #region output

func runFixtureMode(ctx context.Context, path, catalogPath string) (int, error) {
	f, err := replay.LoadFixture(path)
	if err != nil {
		return 0, err
	}
	cfg, err := f.Config.ToEngineConfig()
	if err != nil {
		return 0, err
	}

	cat := catalog.Default()
	if catalogPath != "" {
		if cat, err = catalog.LoadFile(catalogPath); err != nil {
			return 0, err
		}
	}
	e, err := engine.New(cat, cfg)
	if err != nil {
		return 0, err
	}

	results := replay.Replay(ctx, e, f.Cases)
	return printComparison(results, f.ExpectedResults), nil
}

// printComparison outputs a comparison table and returns the exit code.
func printComparison(results []replay.ReplayResult, expected []replay.FixtureExpectedResult) int {
	fmt.Printf("%-30s| %-26s| %-26s| %s\n", "Case", "Expected", "Replayed", "Match")
	fmt.Printf("%-30s+%-27s+%-27s+%s\n",
		"------------------------------", "---------------------------", "---------------------------", "------")

	total := len(results)
	if len(expected) < total {
		total = len(expected)
	}
	for i := 0; i < total; i++ {
		got := results[i].Action
		if results[i].Plan != nil {
			got = results[i].Plan.Combination.PrimaryStrategy
		}
		match := "OK"
		if len(replay.Compare(results[i:i+1], expected[i:i+1])) > 0 {
			match = "DIFF"
		}
		fmt.Printf("%-30s| %-26s| %-26s| %s\n", results[i].CaseID, expected[i].Primary, got, match)
	}

	mismatches := replay.Compare(results, expected)
	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d selected, %d adapted, %d errors, %d nondeterministic\n",
		s.TotalCases, s.Selected, s.Adapted, s.Errors, s.Nondeterministic)
	for _, m := range mismatches {
		fmt.Println("  " + m)
	}

	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion output
