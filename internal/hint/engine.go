// Package hint implements progressive hint disclosure for a single problem
// attempt. Each step shown costs XP; the engine reports the cumulative cost
// and leaves applying it to the caller.
package hint

import "github.com/abhisek/codequiz/internal/problem"

// Config holds the step budget and cost schedule.
type Config struct {
	MaxSteps  int
	XPPerStep int
}

// DefaultConfig returns the standard schedule: 3 steps, 5 XP per step.
func DefaultConfig() Config {
	return Config{MaxSteps: 3, XPPerStep: 5}
}

// ConfigFor returns the schedule for a problem type. Debugging hints cost
// 10 XP per step.
func ConfigFor(t problem.Type) Config {
	cfg := DefaultConfig()
	if t == problem.TypeDebugging {
		cfg.XPPerStep = 10
	}
	return cfg
}

// State is a snapshot of the engine.
//
// Invariants: 1 <= CurrentStep <= MaxSteps, UsedSteps never decreases
// between resets, and TotalXPDeducted is the sum of Deduct(step) over
// every step actually shown.
type State struct {
	Visible         bool
	CurrentStep     int
	UsedSteps       int
	TotalXPDeducted int
}

// Engine is the hint state machine for one problem attempt:
// hidden -> step 1 -> step 2 -> ... -> step MaxSteps.
// Call Reset whenever the underlying problem changes.
type Engine struct {
	cfg   Config
	state State
}

// NewEngine creates a hidden engine. Non-positive config values fall back
// to DefaultConfig.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	if cfg.XPPerStep < 0 {
		cfg.XPPerStep = def.XPPerStep
	}
	e := &Engine{cfg: cfg}
	e.Reset()
	return e
}

// Config returns the engine's schedule.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Deduct returns the XP cost of showing the given step.
func (e *Engine) Deduct(step int) int {
	return step * e.cfg.XPPerStep
}

// Show makes the hint visible. The first Show of an attempt charges step 1;
// showing again after Hide resumes at the same step without a new charge.
// Returns true when a step was charged.
func (e *Engine) Show() bool {
	if e.state.Visible {
		return false
	}
	e.state.Visible = true
	if e.state.UsedSteps > 0 {
		return false
	}
	e.state.CurrentStep = 1
	e.state.UsedSteps = 1
	e.state.TotalXPDeducted += e.Deduct(1)
	return true
}

// Next reveals the following step and charges for it. No-op when hidden or
// already at the last step. Returns true when a step was charged.
func (e *Engine) Next() bool {
	if !e.state.Visible || e.IsLastStep() {
		return false
	}
	e.state.CurrentStep++
	e.state.UsedSteps++
	e.state.TotalXPDeducted += e.Deduct(e.state.CurrentStep)
	return true
}

// Hide conceals the hint. Step, usage and cost are kept.
func (e *Engine) Hide() {
	e.state.Visible = false
}

// Reset returns to the hidden initial state with nothing charged.
func (e *Engine) Reset() {
	e.state = State{CurrentStep: 1}
}

// IsLastStep reports whether the current step is the final one.
func (e *Engine) IsLastStep() bool {
	return e.state.CurrentStep >= e.cfg.MaxSteps
}
