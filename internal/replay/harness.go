package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

// #region types
// ReplayResult captures the outcome of replaying one case through the engine.
type ReplayResult struct {
	CaseID string
	Action string // "selected" | "adapt" | "error"
	Reason string

	Plan *plan.Plan

	// Deterministic is true when a second run produced byte-identical JSON.
	Deterministic bool

	// Gate stage (nil when the case carries no observation)
	GateDecision *gate.GateDecision
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCases       int
	Selected         int
	Adapted          int
	Errors           int
	Nondeterministic int
}

// #endregion types

// #region replay
// Replay runs each case through e twice, compares the encoded plans, and
// evaluates the case observation against the plan's triggers.
func Replay(ctx context.Context, e *engine.Engine, cases []FixtureCase) []ReplayResult {
	results := make([]ReplayResult, 0, len(cases))

	for _, c := range cases {
		first, err := e.SelectAdaptiveStrategy(ctx, c.Request)
		if err != nil {
			results = append(results, ReplayResult{CaseID: c.CaseID, Action: "error", Reason: err.Error()})
			continue
		}
		second, err := e.SelectAdaptiveStrategy(ctx, c.Request)
		if err != nil {
			results = append(results, ReplayResult{CaseID: c.CaseID, Action: "error", Reason: err.Error()})
			continue
		}

		a, errA := json.Marshal(first)
		b, errB := json.Marshal(second)
		r := ReplayResult{
			CaseID:        c.CaseID,
			Action:        "selected",
			Reason:        fmt.Sprintf("primary %s", first.Combination.PrimaryStrategy),
			Plan:          first,
			Deterministic: errA == nil && errB == nil && bytes.Equal(a, b),
		}

		if c.Observation != nil {
			d := e.EvaluateTriggers(first, *c.Observation)
			r.GateDecision = &d
			if d.Adapt() {
				r.Action = "adapt"
				r.Reason = d.Reason
			}
		}
		results = append(results, r)
	}

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalCases: len(results)}
	for _, r := range results {
		switch r.Action {
		case "selected":
			s.Selected++
		case "adapt":
			s.Adapted++
		case "error":
			s.Errors++
		}
		if r.Action != "error" && !r.Deterministic {
			s.Nondeterministic++
		}
	}
	return s
}

// Compare checks results against expectations and returns one message per
// mismatch.
func Compare(results []ReplayResult, expected []FixtureExpectedResult) []string {
	if len(results) != len(expected) {
		return []string{fmt.Sprintf("expected %d results, got %d", len(expected), len(results))}
	}
	var out []string
	for i, want := range expected {
		got := results[i]
		if got.CaseID != want.CaseID {
			out = append(out, fmt.Sprintf("case %d: expected case_id=%s, got %s", i, want.CaseID, got.CaseID))
			continue
		}
		if got.Plan == nil {
			out = append(out, fmt.Sprintf("case %s: no plan (%s)", want.CaseID, got.Reason))
			continue
		}
		comb := got.Plan.Combination
		if comb.PrimaryStrategy != want.Primary {
			out = append(out, fmt.Sprintf("case %s: expected primary=%s, got %s", want.CaseID, want.Primary, comb.PrimaryStrategy))
		}
		if !slices.Equal(comb.ComplementaryStrategies, want.Complementary) {
			out = append(out, fmt.Sprintf("case %s: expected complementary=%v, got %v", want.CaseID, want.Complementary, comb.ComplementaryStrategies))
		}
		if want.Action != "" {
			action := gate.ActionContinue
			if got.GateDecision != nil {
				action = got.GateDecision.Action
			}
			if action != want.Action {
				out = append(out, fmt.Sprintf("case %s: expected action=%s, got %s", want.CaseID, want.Action, action))
			}
		}
		if !got.Deterministic {
			out = append(out, fmt.Sprintf("case %s: repeated run produced different output", want.CaseID))
		}
	}
	return out
}

// #endregion replay
