package selector

// #region imports
import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
)

// #endregion

// #region errors

// ErrNoStrategies is wrapped by SelectionError when there is nothing to rank.
var ErrNoStrategies = errors.New("no strategies available to rank")

// SelectionError reports why a combination could not be selected.
type SelectionError struct {
	Objective learner.Objective
	Err       error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select strategy for %q: %v", e.Objective, e.Err)
}

func (e *SelectionError) Unwrap() error { return e.Err }

// #endregion

// #region constants

const (
	// ComplementaryThreshold is the strict lower bound for complementary and
	// alternative strategies.
	ComplementaryThreshold = 0.6
	// MaxComplementary caps the complementary list.
	MaxComplementary = 2
	// SynergyPerComplement is added to the primary score per complement.
	SynergyPerComplement = 0.1
)

// #endregion

// #region combination

// Combination is the selected primary strategy plus up to two complements.
type Combination struct {
	PrimaryStrategy         string   `json:"primary_strategy"`
	PrimaryScore            float64  `json:"primary_score"`
	ComplementaryStrategies []string `json:"complementary_strategies"`
	CombinationSynergy      float64  `json:"combination_synergy"`
}

// #endregion

// #region selector

// Selector ranks personalized scores and builds the strategy combination.
type Selector struct {
	catalog *catalog.Catalog
}

// NewSelector creates a selector whose tie-break order is c's enumeration order.
func NewSelector(c *catalog.Catalog) *Selector {
	return &Selector{catalog: c}
}

// Select picks the top-ranked strategy as primary and the next two ranked
// strategies scoring above 0.6 as complements. scores must come from the
// personalizer. The context does not influence selection.
func (s *Selector) Select(scores scoring.ScoreMap, objective learner.Objective, _ learner.Context) (Combination, error) {
	if scores.Stage() != scoring.StagePersonalized {
		return Combination{}, &SelectionError{
			Objective: objective,
			Err:       fmt.Errorf("got %s scores: %w", scores.Stage(), scoring.ErrStageOrder),
		}
	}
	if scores.Len() == 0 {
		return Combination{}, &SelectionError{Objective: objective, Err: ErrNoStrategies}
	}

	ranked := s.Rank(scores)
	primary := ranked[0]

	complementary := make([]string, 0, MaxComplementary)
	for _, e := range ranked[1:] {
		if len(complementary) == MaxComplementary {
			break
		}
		if e.Score > ComplementaryThreshold {
			complementary = append(complementary, e.Name)
		}
	}

	return Combination{
		PrimaryStrategy:         primary.Name,
		PrimaryScore:            primary.Score,
		ComplementaryStrategies: complementary,
		CombinationSynergy:      math.Min(1.0, primary.Score+SynergyPerComplement*float64(len(complementary))),
	}, nil
}

// Rank sorts entries descending by score. Equal scores keep catalog order;
// names missing from the catalog sort after known names in their input order.
func (s *Selector) Rank(scores scoring.ScoreMap) []scoring.Entry {
	entries := scores.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return s.position(entries[i].Name) < s.position(entries[j].Name)
	})
	return entries
}

func (s *Selector) position(name string) int {
	if r := s.catalog.Rank(name); r >= 0 {
		return r
	}
	return math.MaxInt
}

// #endregion
