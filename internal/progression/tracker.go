package progression

import (
	"errors"
	"fmt"
	"maps"
)

// DefaultPassAccuracy is the session accuracy (percent) that completes a level.
const DefaultPassAccuracy = 70

var (
	// ErrUnknownLevel is returned for a level ID missing from the catalog.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrLevelLocked is returned when recording an attempt on a locked level.
	ErrLevelLocked = errors.New("level is locked")

	// ErrNoAttemptsLeft is returned when a level's attempt budget is spent.
	ErrNoAttemptsLeft = errors.New("no attempts left")
)

// AttemptResult describes what a recorded attempt changed.
type AttemptResult struct {
	Level        LevelID
	Accuracy     int
	Passed       bool
	NewlyDone    bool // the level went from incomplete to complete
	Unlocked     []LevelID
	AttemptsLeft int
}

// Tracker owns a learner's State and advances it after each level
// attempt. It is the caller-side counterpart of the read-only Gate.
type Tracker struct {
	gate         *Gate
	passAccuracy int
	state        State
}

// NewTracker creates a tracker with a fresh state. passAccuracy <= 0 means
// DefaultPassAccuracy.
func NewTracker(c *Catalog, passAccuracy int) *Tracker {
	if passAccuracy <= 0 {
		passAccuracy = DefaultPassAccuracy
	}
	return &Tracker{
		gate:         NewGate(c),
		passAccuracy: passAccuracy,
		state:        NewState(c),
	}
}

// PassAccuracy returns the session accuracy that completes a level.
func (t *Tracker) PassAccuracy() int {
	return t.passAccuracy
}

// Gate returns the gate bound to the tracker's catalog.
func (t *Tracker) Gate() *Gate {
	return t.gate
}

// State returns a copy of the current progression state.
func (t *Tracker) State() State {
	return State{
		UnlockedLevels:  maps.Clone(t.state.UnlockedLevels),
		CompletedLevels: maps.Clone(t.state.CompletedLevels),
		CurrentLevel:    t.state.CurrentLevel,
		LevelStats:      maps.Clone(t.state.LevelStats),
	}
}

// RecordAttempt spends one attempt on a level and applies the session
// accuracy. Reaching the pass mark completes the level and unlocks every
// level that requires it.
func (t *Tracker) RecordAttempt(id LevelID, accuracy int) (AttemptResult, error) {
	lvl, ok := t.gate.Catalog().Level(id)
	if !ok {
		return AttemptResult{}, fmt.Errorf("record attempt %q: %w", id, ErrUnknownLevel)
	}
	if !t.gate.IsUnlocked(id, t.state) {
		return AttemptResult{}, fmt.Errorf("record attempt %q: %w", id, ErrLevelLocked)
	}
	if t.gate.AttemptsRemaining(id, t.state) <= 0 {
		return AttemptResult{}, fmt.Errorf("record attempt %q: %w", id, ErrNoAttemptsLeft)
	}

	accuracy = min(max(accuracy, 0), 100)

	stats, ok := t.state.LevelStats[id]
	if !ok {
		stats = LevelStats{MaxAttempts: lvl.MaxAttempts}
	}
	stats.AttemptsUsed++
	stats.CompletionRate = max(stats.CompletionRate, accuracy)

	res := AttemptResult{
		Level:    id,
		Accuracy: accuracy,
		Passed:   accuracy >= t.passAccuracy,
	}

	if res.Passed && !stats.IsCompleted {
		stats.IsCompleted = true
		res.NewlyDone = true
		t.state.CompletedLevels[id] = true

		for _, dep := range t.gate.Catalog().Dependents(id) {
			if !t.state.UnlockedLevels[dep] {
				t.state.UnlockedLevels[dep] = true
				res.Unlocked = append(res.Unlocked, dep)
			}
		}
		if len(res.Unlocked) > 0 {
			t.state.CurrentLevel = res.Unlocked[0]
		}
	}

	t.state.LevelStats[id] = stats
	res.AttemptsLeft = stats.AttemptsRemaining()
	return res, nil
}

// Select makes id the current level if the learner may enter it.
func (t *Tracker) Select(id LevelID) bool {
	if !t.gate.CanEnter(id, t.state) {
		return false
	}
	t.state.CurrentLevel = id
	return true
}
