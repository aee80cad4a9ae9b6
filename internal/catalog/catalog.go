package catalog

// #region imports
import (
	"errors"
	"fmt"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
)

// #endregion

// #region errors

var (
	// ErrNotFound is returned when a strategy name is not in the catalog.
	ErrNotFound = errors.New("strategy not found")
	// ErrInvalidDefinition is returned by New for duplicate names or demands outside [0,1].
	ErrInvalidDefinition = errors.New("invalid strategy definition")
)

// #endregion

// #region definition

// StrategyDefinition describes one instructional strategy.
type StrategyDefinition struct {
	Name                  string              `json:"name" yaml:"name"`
	Description           string              `json:"description" yaml:"description"`
	EffectivenessContexts []learner.Objective `json:"effectiveness_contexts" yaml:"effectiveness_contexts"`
	CognitiveDemands      float64             `json:"cognitive_demands" yaml:"cognitive_demands"`
}

// EffectiveFor reports whether the strategy lists objective among its contexts.
func (d StrategyDefinition) EffectiveFor(objective learner.Objective) bool {
	for _, c := range d.EffectivenessContexts {
		if c == objective {
			return true
		}
	}
	return false
}

func (d StrategyDefinition) clone() StrategyDefinition {
	d.EffectivenessContexts = append([]learner.Objective(nil), d.EffectivenessContexts...)
	return d
}

// #endregion

// #region catalog

// Catalog is an immutable, ordered registry of strategy definitions.
// Definition order is the tie-break order used by every ranking stage.
type Catalog struct {
	defs  []StrategyDefinition
	index map[string]int
}

// New builds a catalog from defs, preserving their order.
func New(defs ...StrategyDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]StrategyDefinition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("empty name: %w", ErrInvalidDefinition)
		}
		if _, dup := c.index[d.Name]; dup {
			return nil, fmt.Errorf("duplicate strategy %q: %w", d.Name, ErrInvalidDefinition)
		}
		if d.CognitiveDemands < 0 || d.CognitiveDemands > 1 {
			return nil, fmt.Errorf("strategy %q demands %.2f: %w", d.Name, d.CognitiveDemands, ErrInvalidDefinition)
		}
		d = d.clone()
		c.index[d.Name] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// Get looks up a strategy by name.
func (c *Catalog) Get(name string) (StrategyDefinition, error) {
	i, ok := c.index[name]
	if !ok {
		return StrategyDefinition{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return c.defs[i].clone(), nil
}

// All returns every definition in catalog order. The slice is a copy.
func (c *Catalog) All() []StrategyDefinition {
	out := make([]StrategyDefinition, len(c.defs))
	for i, d := range c.defs {
		out[i] = d.clone()
	}
	return out
}

// Names returns strategy names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.defs))
	for i, d := range c.defs {
		out[i] = d.Name
	}
	return out
}

// Rank returns the catalog position of name, or -1 if absent.
func (c *Catalog) Rank(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Len returns the number of strategies.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// #endregion
