package quiz

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codequiz/internal/hint"
	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/session"
	"github.com/abhisek/codequiz/internal/store"
	"github.com/abhisek/codequiz/internal/xp"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
	hintEvents    []store.HintEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) AppendHintEvent(_ context.Context, data store.HintEventData) error {
	m.hintEvents = append(m.hintEvents, data)
	return nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) TotalHintXP(_ context.Context) (int, error) {
	return 0, nil
}

type hintCounter struct {
	steps int
	xp    int
}

func (h *hintCounter) HintCharged(_ problem.Type, xp int) {
	h.steps++
	h.xp += xp
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

var shiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}

func testPools() map[problem.Type][]problem.Problem {
	hints := []string{"Think about zero values.", "Maps need make.", "Writing to nil panics."}
	return map[problem.Type][]problem.Problem{
		problem.TypeOX: {
			{ID: "ox-1", Type: problem.TypeOX, Prompt: "Slices are reference-like.", Answer: "O", Hints: hints},
			{ID: "ox-2", Type: problem.TypeOX, Prompt: "Strings are mutable.", Answer: "O", Hints: hints},
		},
		problem.TypeFillBlank: {
			{ID: "fb-1", Type: problem.TypeFillBlank, Prompt: "___ runs at function exit.", Answer: "defer"},
		},
	}
}

type fixture struct {
	deps    Deps
	events  *mockEventRepo
	wallet  *xp.Wallet
	tracker *progression.Tracker
	counter *hintCounter
}

func newFixture() *fixture {
	repo := problem.NewRepository(testPools(), problem.WithRand(rand.New(rand.NewPCG(1, 2))))
	f := &fixture{
		events:  &mockEventRepo{},
		wallet:  xp.NewWallet(100, 10),
		tracker: progression.NewTracker(progression.DefaultCatalog(), 70),
		counter: &hintCounter{},
	}
	f.deps = Deps{
		Sessions: session.NewManager(repo),
		Tracker:  f.tracker,
		Wallet:   f.wallet,
		Events:   f.events,
		Hints:    f.counter,
	}
	return f
}

func beginner(t *testing.T, tr *progression.Tracker) progression.Level {
	t.Helper()
	lvl, ok := tr.Gate().Catalog().Level(progression.LevelBeginner)
	require.True(t, ok)
	return lvl
}

func TestQuizScreen_InitCreatesSession(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	cur, ok := f.deps.Sessions.CurrentSession()
	require.True(t, ok)
	assert.Len(t, cur.Problems, 2)
	assert.NotEmpty(t, s.problem.ID)
	require.Len(t, f.events.sessionEvents, 1)
	assert.Equal(t, store.ActionStart, f.events.sessionEvents[0].Action)
}

func TestQuizScreen_EmptyPoolShowsError(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeDebugging, 5)
	s.Init()

	if s.errMsg == "" {
		t.Fatal("expected an error for an empty pool")
	}
	if !strings.Contains(s.View(80, 24), "Error") {
		t.Error("expected error view")
	}
	if s.HandlesEscape() {
		t.Error("error screen should let Esc go back")
	}

	_, cmd := s.Update(keyPress('a'))
	require.NotNil(t, cmd)
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg from error state")
	}
}

func TestQuizScreen_AnswerOX(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	_, cmd := s.Update(keyPress('o'))
	assert.NotNil(t, cmd, "expected feedback timer")
	assert.True(t, s.showingFeedback)
	assert.True(t, s.lastCorrect)
	assert.Equal(t, 110, f.wallet.Balance())

	require.Len(t, f.events.answerEvents, 1)
	assert.Equal(t, "O", f.events.answerEvents[0].UserAnswer)
	assert.True(t, f.events.answerEvents[0].Correct)
}

func TestQuizScreen_WrongAnswerIsReviewed(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	s.Update(keyPress('x'))

	assert.False(t, s.lastCorrect)
	require.Len(t, s.missed, 1)
	assert.Equal(t, "O (true)", s.missed[0].CorrectAnswer)
	assert.Contains(t, s.View(100, 30), "Not quite")
}

func TestQuizScreen_HintChargesOncePerStep(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	s.Update(specialKey(tea.KeyTab)) // show: step 1 costs 5
	s.Update(specialKey(tea.KeyTab)) // next: step 2 costs 10
	s.Update(shiftTab)               // hide
	s.Update(specialKey(tea.KeyTab)) // show again: no charge

	st := s.hints.State()
	assert.True(t, st.Visible)
	assert.Equal(t, 2, st.CurrentStep)
	assert.Equal(t, 15, st.TotalXPDeducted)
	assert.Equal(t, 85, f.wallet.Balance())
	assert.Equal(t, 2, f.counter.steps)
	assert.Equal(t, 15, f.counter.xp)

	require.Len(t, f.events.hintEvents, 2)
	assert.Equal(t, 2, f.events.hintEvents[1].Step)
	assert.Equal(t, 10, f.events.hintEvents[1].XPDeducted)

	view := s.View(100, 30)
	assert.Contains(t, view, "Maps need make.")
}

func TestQuizScreen_HintsResetOnNextProblem(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	s.Update(specialKey(tea.KeyTab))
	s.Update(keyPress('o'))
	s.Update(keyPress(' ')) // dismiss feedback

	st := s.hints.State()
	assert.False(t, st.Visible)
	assert.Equal(t, 0, st.UsedSteps)
	assert.Equal(t, 2, f.deps.Sessions.Progress().Current)
}

func TestQuizScreen_StaleFeedbackTimerIgnored(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	s.Update(keyPress('o'))
	s.Update(keyPress(' ')) // dismissed by key before the timer fired

	s.Update(feedbackDoneMsg{seq: 1})
	assert.Equal(t, 2, f.deps.Sessions.Progress().Current)
	assert.False(t, f.deps.Sessions.IsSessionCompleted())
}

func TestQuizScreen_FinishRecordsLevelAttempt(t *testing.T) {
	f := newFixture()
	s := NewForLevel(f.deps, beginner(t, f.tracker))
	s.Init()
	assert.Equal(t, "Beginner", s.Title())

	s.Update(keyPress('o'))
	s.Update(feedbackDoneMsg{seq: s.feedbackSeq})
	assert.Equal(t, "Finish", s.submitLabel())

	s.Update(keyPress('o'))
	assert.True(t, s.lastWasFinal)
	_, cmd := s.Update(keyPress(' '))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected summary to replace the quiz")
	assert.Equal(t, "Quiz Summary", msg.Screen.Title())

	st := f.tracker.State()
	assert.True(t, st.CompletedLevels[progression.LevelBeginner])
	assert.True(t, st.UnlockedLevels[progression.LevelElementary])

	last := f.events.sessionEvents[len(f.events.sessionEvents)-1]
	assert.Equal(t, store.ActionEnd, last.Action)
	assert.Equal(t, 100, last.Accuracy)
	assert.Equal(t, "beginner", last.Level)

	_, active := f.deps.Sessions.CurrentSession()
	assert.False(t, active, "finished quiz clears its session")
}

func TestQuizScreen_QuitDoesNotSpendAttempt(t *testing.T) {
	f := newFixture()
	s := NewForLevel(f.deps, beginner(t, f.tracker))
	s.Init()

	assert.True(t, s.HandlesEscape())
	s.Update(specialKey(tea.KeyEscape))
	assert.True(t, s.showingQuitConfirm)

	s.Update(keyPress('n'))
	assert.False(t, s.showingQuitConfirm)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after confirming quit")
	}

	_, used := f.tracker.State().LevelStats[progression.LevelBeginner]
	assert.False(t, used)
	last := f.events.sessionEvents[len(f.events.sessionEvents)-1]
	assert.Equal(t, store.ActionAbandon, last.Action)
}

func TestQuizScreen_FillBlank(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeFillBlank, 1)
	s.Init()

	// Blank input is not submitted.
	s.Update(specialKey(tea.KeyEnter))
	assert.False(t, s.showingFeedback)

	s.input.Model.SetValue("Defer")
	s.Update(specialKey(tea.KeyEnter))

	assert.True(t, s.showingFeedback)
	assert.True(t, s.lastCorrect)
	assert.True(t, s.lastWasFinal)
}

func TestQuizScreen_KeyHints(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeOX, 2)
	s.Init()

	hints := s.KeyHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Hint (−5 XP)", hints[0].Description)

	s.Update(specialKey(tea.KeyEscape))
	hints = s.KeyHints()
	require.Len(t, hints, 2)
	assert.Equal(t, "Y", hints[0].Key)
}

func TestQuizScreen_HintStepsMatchEmbeddedContent(t *testing.T) {
	repo, err := problem.LoadEmbedded(problem.WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)

	for _, typ := range problem.AllTypes() {
		t.Run(string(typ), func(t *testing.T) {
			wallet := xp.NewWallet(100, 10)
			deps := Deps{Sessions: session.NewManager(repo), Wallet: wallet}
			s := New(deps, typ, 1)
			s.Init()

			texts := min(len(s.problem.Hints), hint.DefaultConfig().MaxSteps)
			require.Positive(t, texts, "problem %s has no hints", s.problem.ID)

			for range 3 {
				s.Update(specialKey(tea.KeyTab))
			}

			st := s.hints.State()
			if st.UsedSteps != texts {
				t.Errorf("UsedSteps = %d, want %d (one per hint text)", st.UsedSteps, texts)
			}
			if got := len(s.problem.HintsUpTo(st.CurrentStep)); got != texts {
				t.Errorf("visible hints = %d, want %d", got, texts)
			}
			assert.Equal(t, 100-st.TotalXPDeducted, wallet.Balance())
			assert.Contains(t, s.hintAction(), "No more hints")
		})
	}
}

func TestQuizScreen_NoHintsNoCharge(t *testing.T) {
	f := newFixture()
	s := New(f.deps, problem.TypeFillBlank, 1)
	s.Init()
	require.Empty(t, s.problem.Hints)

	s.Update(specialKey(tea.KeyTab))

	assert.False(t, s.hints.State().Visible)
	assert.Equal(t, 100, f.wallet.Balance())
	assert.Empty(t, f.events.hintEvents)
	for _, h := range s.KeyHints() {
		assert.NotEqual(t, "Tab", h.Key)
	}
}
