package progression

import (
	"github.com/abhisek/codequiz/internal/problem"
)

// LevelID names a difficulty tier.
type LevelID string

const (
	LevelBeginner     LevelID = "beginner"
	LevelElementary   LevelID = "elementary"
	LevelIntermediate LevelID = "intermediate"
	LevelAdvanced     LevelID = "advanced"
	LevelChallenge    LevelID = "challenge"
)

// Unlimited is the attempt budget of levels that can be retried freely.
const Unlimited = 999

// Level describes one difficulty tier and what it takes to enter it.
type Level struct {
	ID   LevelID
	Name string

	// Requires is the level that must be completed first. Empty for the
	// entry level.
	Requires LevelID

	// MaxAttempts is the attempt budget; Unlimited for most levels.
	MaxAttempts int

	// ProblemType and ProblemCount shape the session started for this level.
	ProblemType  problem.Type
	ProblemCount int
}

// DefaultLevels returns the built-in level chain, entry level first.
func DefaultLevels() []Level {
	return []Level{
		{ID: LevelBeginner, Name: "Beginner", MaxAttempts: Unlimited, ProblemType: problem.TypeOX, ProblemCount: 10},
		{ID: LevelElementary, Name: "Elementary", Requires: LevelBeginner, MaxAttempts: Unlimited, ProblemType: problem.TypeMultipleChoice, ProblemCount: 10},
		{ID: LevelIntermediate, Name: "Intermediate", Requires: LevelElementary, MaxAttempts: Unlimited, ProblemType: problem.TypeFillBlank, ProblemCount: 10},
		{ID: LevelAdvanced, Name: "Advanced", Requires: LevelIntermediate, MaxAttempts: Unlimited, ProblemType: problem.TypeDebugging, ProblemCount: 8},
		{ID: LevelChallenge, Name: "Challenge", Requires: LevelAdvanced, MaxAttempts: 3, ProblemType: problem.TypeDebugging, ProblemCount: 8},
	}
}
