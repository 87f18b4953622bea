package progression

import "fmt"

// Gate answers "may the learner enter this level, and if not, why".
// It only reads State; advancing progression is the Tracker's job.
type Gate struct {
	catalog *Catalog
}

// NewGate creates a Gate over the given catalog.
func NewGate(c *Catalog) *Gate {
	return &Gate{catalog: c}
}

// Catalog returns the level catalog the gate decides over.
func (g *Gate) Catalog() *Catalog {
	return g.catalog
}

// IsUnlocked reports whether id is in the unlocked set.
func (g *Gate) IsUnlocked(id LevelID, st State) bool {
	return st.UnlockedLevels[id]
}

// UnlockReason explains why a level is locked. The second result is false
// when the level is already unlocked.
func (g *Gate) UnlockReason(id LevelID, st State) (string, bool) {
	if g.IsUnlocked(id, st) {
		return "", false
	}

	lvl, ok := g.catalog.Level(id)
	if !ok {
		return fmt.Sprintf("Unknown level %q", id), true
	}
	if lvl.Requires == "" {
		return fmt.Sprintf("%s is not available yet", lvl.Name), true
	}

	reqName := string(lvl.Requires)
	if req, ok := g.catalog.Level(lvl.Requires); ok {
		reqName = req.Name
	}
	return fmt.Sprintf("Complete %s to unlock %s", reqName, lvl.Name), true
}

// AttemptsRemaining returns how many attempts are left on a level. Levels
// without recorded stats have their full catalog budget; unknown levels
// have none.
func (g *Gate) AttemptsRemaining(id LevelID, st State) int {
	if stats, ok := st.LevelStats[id]; ok {
		return stats.AttemptsRemaining()
	}
	if lvl, ok := g.catalog.Level(id); ok {
		return lvl.MaxAttempts
	}
	return 0
}

// CanEnter reports whether the level is unlocked and has attempts left.
func (g *Gate) CanEnter(id LevelID, st State) bool {
	return g.IsUnlocked(id, st) && g.AttemptsRemaining(id, st) > 0
}

// CompletionRate returns the level's progress in percent. Completed
// levels always report 100.
func (g *Gate) CompletionRate(id LevelID, st State) int {
	stats := st.LevelStats[id]
	if stats.IsCompleted || st.CompletedLevels[id] {
		return 100
	}
	return min(max(stats.CompletionRate, 0), 100)
}

// LevelStatus bundles every gate decision for one level, for display.
type LevelStatus struct {
	Level             Level
	Unlocked          bool
	Completed         bool
	Reason            string
	AttemptsRemaining int
	CanEnter          bool
	CompletionRate    int
}

// Status evaluates all gate decisions for a level.
func (g *Gate) Status(lvl Level, st State) LevelStatus {
	reason, _ := g.UnlockReason(lvl.ID, st)
	return LevelStatus{
		Level:             lvl,
		Unlocked:          g.IsUnlocked(lvl.ID, st),
		Completed:         st.CompletedLevels[lvl.ID] || st.LevelStats[lvl.ID].IsCompleted,
		Reason:            reason,
		AttemptsRemaining: g.AttemptsRemaining(lvl.ID, st),
		CanEnter:          g.CanEnter(lvl.ID, st),
		CompletionRate:    g.CompletionRate(lvl.ID, st),
	}
}

// Overview returns the status of every level in catalog order.
func (g *Gate) Overview(st State) []LevelStatus {
	levels := g.catalog.Levels()
	out := make([]LevelStatus, len(levels))
	for i, l := range levels {
		out[i] = g.Status(l, st)
	}
	return out
}
