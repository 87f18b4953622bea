package progression

// LevelStats is the learner's record on one level.
type LevelStats struct {
	CompletionRate int // 0-100
	AttemptsUsed   int
	MaxAttempts    int
	IsCompleted    bool
}

// AttemptsRemaining returns max(0, MaxAttempts-AttemptsUsed).
func (s LevelStats) AttemptsRemaining() int {
	return max(0, s.MaxAttempts-s.AttemptsUsed)
}

// State is the learner's cross-session progression. It is owned by the
// caller; the Gate only reads it.
type State struct {
	UnlockedLevels  map[LevelID]bool
	CompletedLevels map[LevelID]bool
	CurrentLevel    LevelID
	LevelStats      map[LevelID]LevelStats
}

// NewState returns a fresh state with the catalog's root levels unlocked.
func NewState(c *Catalog) State {
	st := State{
		UnlockedLevels:  make(map[LevelID]bool),
		CompletedLevels: make(map[LevelID]bool),
		LevelStats:      make(map[LevelID]LevelStats),
	}
	for _, l := range c.Roots() {
		st.UnlockedLevels[l.ID] = true
		if st.CurrentLevel == "" {
			st.CurrentLevel = l.ID
		}
	}
	return st
}
