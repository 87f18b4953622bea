package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/codequiz/internal/problem"
)

func TestNewEngine_Initial(t *testing.T) {
	e := NewEngine(DefaultConfig())

	want := State{CurrentStep: 1}
	if got := e.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestShow_ChargesFirstStep(t *testing.T) {
	e := NewEngine(Config{MaxSteps: 3, XPPerStep: 5})

	if !e.Show() {
		t.Fatal("expected first Show to charge")
	}
	want := State{Visible: true, CurrentStep: 1, UsedSteps: 1, TotalXPDeducted: 5}
	if got := e.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}

	// Already visible: no-op.
	if e.Show() {
		t.Error("expected second Show to be a no-op")
	}
	if got := e.State(); got != want {
		t.Errorf("State() after repeat Show = %+v, want %+v", got, want)
	}
}

func TestNext_CostSchedule(t *testing.T) {
	e := NewEngine(Config{MaxSteps: 3, XPPerStep: 5})
	e.Show()

	assert.True(t, e.Next())
	assert.Equal(t, State{Visible: true, CurrentStep: 2, UsedSteps: 2, TotalXPDeducted: 5 + 10}, e.State())

	assert.True(t, e.Next())
	assert.Equal(t, State{Visible: true, CurrentStep: 3, UsedSteps: 3, TotalXPDeducted: 5 + 10 + 15}, e.State())
}

func TestNext_WhenHiddenIsNoop(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.False(t, e.Next())
	assert.Equal(t, State{CurrentStep: 1}, e.State())

	e.Show()
	e.Hide()
	assert.False(t, e.Next())
	assert.Equal(t, 1, e.State().CurrentStep)
}

func TestNext_ReachesLastStep(t *testing.T) {
	for _, maxSteps := range []int{1, 2, 3, 5} {
		e := NewEngine(Config{MaxSteps: maxSteps, XPPerStep: 5})
		e.Show()
		for i := 0; i < maxSteps-1; i++ {
			assert.False(t, e.IsLastStep(), "maxSteps=%d step %d", maxSteps, i+1)
			e.Next()
		}
		assert.True(t, e.IsLastStep(), "maxSteps=%d", maxSteps)

		before := e.State()
		assert.False(t, e.Next())
		assert.Equal(t, before, e.State(), "Next at last step must not change state")
	}
}

func TestHideShow_DoesNotRecharge(t *testing.T) {
	e := NewEngine(Config{MaxSteps: 3, XPPerStep: 5})
	e.Show()
	e.Next()
	before := e.State()

	e.Hide()
	assert.False(t, e.State().Visible)
	assert.Equal(t, before.CurrentStep, e.State().CurrentStep)

	assert.False(t, e.Show())
	after := e.State()
	assert.True(t, after.Visible)
	assert.Equal(t, before.CurrentStep, after.CurrentStep)
	assert.Equal(t, before.UsedSteps, after.UsedSteps)
	assert.Equal(t, before.TotalXPDeducted, after.TotalXPDeducted)
}

func TestReset(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Show()
	e.Next()

	e.Reset()
	assert.Equal(t, State{CurrentStep: 1}, e.State())

	// A fresh attempt charges again from step 1.
	assert.True(t, e.Show())
	assert.Equal(t, 5, e.State().TotalXPDeducted)
}

func TestUsedSteps_Monotonic(t *testing.T) {
	e := NewEngine(Config{MaxSteps: 4, XPPerStep: 1})
	last := 0
	show := func() { e.Show() }
	next := func() { e.Next() }
	ops := []func(){next, show, e.Hide, next, show, next, e.Hide, show, next, next}
	for i, op := range ops {
		op()
		used := e.State().UsedSteps
		if used < last {
			t.Fatalf("op %d: UsedSteps decreased from %d to %d", i, last, used)
		}
		last = used
	}
}

func TestDeduct(t *testing.T) {
	e := NewEngine(ConfigFor(problem.TypeDebugging))
	assert.Equal(t, 10, e.Deduct(1))
	assert.Equal(t, 30, e.Deduct(3))

	e = NewEngine(ConfigFor(problem.TypeOX))
	assert.Equal(t, 5, e.Deduct(1))
}

func TestNewEngine_FallbackConfig(t *testing.T) {
	e := NewEngine(Config{})
	assert.Equal(t, DefaultConfig().MaxSteps, e.Config().MaxSteps)
	assert.Equal(t, 0, e.Config().XPPerStep)
}
