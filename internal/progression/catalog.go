package progression

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Catalog is an ordered, validated set of levels with prerequisite edges.
type Catalog struct {
	levels     []Level
	byID       map[LevelID]int
	dependents map[LevelID][]LevelID
}

// NewCatalog validates levels and builds the lookup indices.
func NewCatalog(levels []Level) (*Catalog, error) {
	if err := validateLevels(levels); err != nil {
		return nil, err
	}

	c := &Catalog{
		levels:     slices.Clone(levels),
		byID:       make(map[LevelID]int, len(levels)),
		dependents: make(map[LevelID][]LevelID),
	}
	for i, l := range c.levels {
		c.byID[l.ID] = i
		if l.Requires != "" {
			c.dependents[l.Requires] = append(c.dependents[l.Requires], l.ID)
		}
	}
	return c, nil
}

// DefaultCatalog returns the catalog for DefaultLevels.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultLevels())
	if err != nil {
		panic(fmt.Sprintf("default levels are invalid: %v", err))
	}
	return c
}

// Levels returns all levels in catalog order.
func (c *Catalog) Levels() []Level {
	return slices.Clone(c.levels)
}

// Level returns the level with the given ID.
func (c *Catalog) Level(id LevelID) (Level, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Level{}, false
	}
	return c.levels[i], true
}

// Roots returns the levels with no prerequisite.
func (c *Catalog) Roots() []Level {
	var out []Level
	for _, l := range c.levels {
		if l.Requires == "" {
			out = append(out, l)
		}
	}
	return out
}

// Dependents returns the IDs of levels that require id.
func (c *Catalog) Dependents(id LevelID) []LevelID {
	return slices.Clone(c.dependents[id])
}

// validateLevels checks for duplicate IDs, dangling prerequisites, cycles
// and non-positive attempt budgets. Returns a combined error, or nil.
func validateLevels(levels []Level) error {
	var errs []string

	ids := make(map[LevelID]bool, len(levels))
	for _, l := range levels {
		if l.ID == "" {
			errs = append(errs, "level with empty ID")
			continue
		}
		if ids[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate level ID: %q", l.ID))
		}
		ids[l.ID] = true
		if l.MaxAttempts <= 0 {
			errs = append(errs, fmt.Sprintf("level %q has non-positive MaxAttempts %d", l.ID, l.MaxAttempts))
		}
	}

	requires := make(map[LevelID]LevelID, len(levels))
	for _, l := range levels {
		if l.Requires == "" {
			continue
		}
		if !ids[l.Requires] {
			errs = append(errs, fmt.Sprintf("level %q requires nonexistent level %q", l.ID, l.Requires))
		}
		requires[l.ID] = l.Requires
	}

	// Each level has at most one prerequisite, so following the chain
	// either ends at a root or revisits a level.
	for _, l := range levels {
		seen := map[LevelID]bool{l.ID: true}
		for cur := requires[l.ID]; cur != ""; cur = requires[cur] {
			if seen[cur] {
				errs = append(errs, fmt.Sprintf("prerequisite cycle through level %q", l.ID))
				break
			}
			seen[cur] = true
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid level catalog:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
