package session

import (
	"errors"
	"slices"
	"time"

	"github.com/abhisek/codequiz/internal/problem"
)

// DefaultProblemCount is the number of problems drawn when the caller does
// not ask for a specific count.
const DefaultProblemCount = 10

var (
	// ErrUnsupportedType is returned by CreateSession for an unknown problem type.
	ErrUnsupportedType = errors.New("unsupported problem type")

	// ErrEmptyPool is returned by CreateSession when no problems could be drawn.
	ErrEmptyPool = errors.New("problem pool is empty")
)

// TestSession is one timed attempt at a fixed sequence of problems.
//
// Invariants: 0 <= CurrentIndex <= len(Problems),
// Completed == (CurrentIndex >= len(Problems)), and
// len(Answers) <= len(Problems).
type TestSession struct {
	ID           string
	Type         problem.Type
	Problems     []problem.Problem
	CurrentIndex int
	Answers      []AnswerRecord
	StartTime    time.Time
	Completed    bool
}

// AnswerRecord is one submitted answer. Records are append-only.
type AnswerRecord struct {
	ProblemID  string
	UserAnswer string
	IsCorrect  bool

	// TimeSpent is the amortized time per answer at submission: elapsed
	// session time divided by the answer count including this one.
	TimeSpent time.Duration
}

// Total returns the number of problems in the session.
func (s TestSession) Total() int {
	return len(s.Problems)
}

func (s *TestSession) clone() TestSession {
	c := *s
	c.Problems = slices.Clone(s.Problems)
	c.Answers = slices.Clone(s.Answers)
	return c
}

// Observer receives notifications about session lifecycle changes.
// Implementations must not call back into the Manager.
type Observer interface {
	SessionCreated(s TestSession)
	AnswerSubmitted(s TestSession, answer AnswerRecord)
	SessionCompleted(s TestSession)
}

// Sampler draws problems for a new session.
type Sampler interface {
	Sample(t problem.Type, count int) []problem.Problem
}
