package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/codequiz/internal/problem"
)

// Manager owns the single active session of one learner. It is not safe
// for concurrent use; a Manager has one logical owner, typically the
// screen driving the quiz.
//
// Only CreateSession reports errors. Every other method treats "no
// session" and "already completed" as ordinary states and answers with
// an absent value or false.
type Manager struct {
	sampler  Sampler
	now      func() time.Time
	newID    func() string
	observer Observer

	current *TestSession
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces the UUID session ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// WithObserver registers an observer for lifecycle notifications.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// NewManager creates a Manager that draws problems from sampler.
func NewManager(sampler Sampler, opts ...Option) *Manager {
	m := &Manager{
		sampler: sampler,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession draws count problems of type t and makes the result the
// active session, replacing any previous one. A count <= 0 means
// DefaultProblemCount. On error the previous session is left untouched.
func (m *Manager) CreateSession(t problem.Type, count int) (TestSession, error) {
	if !t.Valid() {
		return TestSession{}, fmt.Errorf("create session %q: %w", t, ErrUnsupportedType)
	}
	if count <= 0 {
		count = DefaultProblemCount
	}

	problems := m.sampler.Sample(t, count)
	if len(problems) == 0 {
		return TestSession{}, fmt.Errorf("create session %s: %w", t, ErrEmptyPool)
	}

	m.current = &TestSession{
		ID:        m.newID(),
		Type:      t,
		Problems:  problems,
		Answers:   make([]AnswerRecord, 0, len(problems)),
		StartTime: m.now(),
	}

	snap := m.current.clone()
	if m.observer != nil {
		m.observer.SessionCreated(snap)
	}
	return snap, nil
}

// CurrentSession returns a copy of the active session.
func (m *Manager) CurrentSession() (TestSession, bool) {
	if m.current == nil {
		return TestSession{}, false
	}
	return m.current.clone(), true
}

// CurrentProblem returns the problem at the current index. It is absent
// when there is no session or the session is completed.
func (m *Manager) CurrentProblem() (problem.Problem, bool) {
	s := m.current
	if s == nil || s.Completed || s.CurrentIndex >= len(s.Problems) {
		return problem.Problem{}, false
	}
	return s.Problems[s.CurrentIndex], true
}

// SubmitAnswer records an answer for the current problem. It returns false
// without side effects when there is no session, the session is completed,
// or every problem slot already has an answer.
func (m *Manager) SubmitAnswer(userAnswer string, isCorrect bool) bool {
	s := m.current
	if s == nil || s.Completed || s.CurrentIndex >= len(s.Problems) {
		return false
	}
	if len(s.Answers) >= len(s.Problems) {
		return false
	}

	n := len(s.Answers) + 1
	elapsed := m.now().Sub(s.StartTime)
	if elapsed < 0 {
		elapsed = 0
	}

	rec := AnswerRecord{
		ProblemID:  s.Problems[s.CurrentIndex].ID,
		UserAnswer: userAnswer,
		IsCorrect:  isCorrect,
		TimeSpent:  elapsed / time.Duration(n),
	}
	s.Answers = append(s.Answers, rec)

	if m.observer != nil {
		m.observer.AnswerSubmitted(s.clone(), rec)
	}
	return true
}

// GoToNextProblem advances to the next problem. It returns true when a
// next problem exists. Advancing past the last problem completes the
// session and returns false; so does any call on a completed session.
func (m *Manager) GoToNextProblem() bool {
	s := m.current
	if s == nil || s.Completed {
		return false
	}

	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Problems) {
		s.Completed = true
		if m.observer != nil {
			m.observer.SessionCompleted(s.clone())
		}
		return false
	}
	return true
}

// Progress reports the 1-based position within the session.
func (m *Manager) Progress() Progress {
	s := m.current
	if s == nil || len(s.Problems) == 0 {
		return Progress{}
	}
	total := len(s.Problems)
	current := min(s.CurrentIndex+1, total)
	return Progress{
		Current:    current,
		Total:      total,
		Percentage: percent(current, total),
	}
}

// Stats recomputes aggregate statistics from the recorded answers.
func (m *Manager) Stats() (Stats, bool) {
	if m.current == nil {
		return Stats{}, false
	}
	return ComputeStats(m.current.Answers), true
}

// IsSessionCompleted reports whether the active session is finished.
func (m *Manager) IsSessionCompleted() bool {
	return m.current != nil && m.current.Completed
}

// IsCurrentProblemLast reports whether the current problem is the final
// one. Screens check this before submitting so they know whether the
// in-flight answer finishes the session.
func (m *Manager) IsCurrentProblemLast() bool {
	s := m.current
	if s == nil {
		return false
	}
	return s.CurrentIndex >= len(s.Problems)-1
}

// Elapsed returns the time since the active session started.
func (m *Manager) Elapsed() time.Duration {
	if m.current == nil {
		return 0
	}
	return m.now().Sub(m.current.StartTime)
}

// ClearSession discards the active session.
func (m *Manager) ClearSession() {
	m.current = nil
}
