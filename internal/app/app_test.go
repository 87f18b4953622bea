package app

import (
	"math/rand/v2"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/screens/quiz"
	"github.com/abhisek/codequiz/internal/session"
	"github.com/abhisek/codequiz/internal/xp"
)

func testOptions() Options {
	repo := problem.NewRepository(map[problem.Type][]problem.Problem{
		problem.TypeOX: {{ID: "ox-1", Type: problem.TypeOX, Prompt: "p", Answer: "O"}},
	}, problem.WithRand(rand.New(rand.NewPCG(5, 6))))
	return Options{Deps: quiz.Deps{
		Sessions: session.NewManager(repo),
		Tracker:  progression.NewTracker(progression.DefaultCatalog(), 70),
		Wallet:   xp.NewWallet(40, 10),
	}}
}

func TestAppModel_StartsAtHome(t *testing.T) {
	m := newAppModel(testOptions())
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestAppModel_InitialScreen(t *testing.T) {
	opts := testOptions()
	opts.Initial = quiz.New(opts.Deps, problem.TypeOX, 1)
	m := newAppModel(opts)
	m.Init()

	assert.Equal(t, problem.TypeOX.DisplayName(), m.router.Active().Title())
	assert.Equal(t, 2, m.router.Depth(), "home stays below the initial screen")
	_, active := opts.Deps.Sessions.CurrentSession()
	assert.True(t, active)
}

func TestAppModel_EscGuardedByQuiz(t *testing.T) {
	opts := testOptions()
	m := newAppModel(opts)
	m.router.Push(quiz.New(opts.Deps, problem.TypeOX, 1))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		_, isPop := cmd().(router.PopScreenMsg)
		assert.False(t, isPop, "quiz should confirm before leaving")
	}
	assert.Equal(t, 2, m.router.Depth())
}

func TestAppModel_EscPopsPlainScreens(t *testing.T) {
	opts := testOptions()
	m := newAppModel(opts)
	m.router.Push(quiz.New(opts.Deps, problem.TypeDebugging, 1)) // empty pool: error state

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, isPop := cmd().(router.PopScreenMsg)
	assert.True(t, isPop)
}

func TestAppModel_HeaderState(t *testing.T) {
	opts := testOptions()
	m := newAppModel(opts)

	assert.Equal(t, 40, m.balance())
	assert.Equal(t, "Beginner", m.levelName())

	opts.Deps.Wallet.Spend(15)
	assert.Equal(t, 25, m.balance())
}
