package quiz

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/codequiz/internal/hint"
	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/session"
	"github.com/abhisek/codequiz/internal/store"
	"github.com/abhisek/codequiz/internal/xp"
)

// HintRecorder receives charged hint steps, e.g. for metrics.
type HintRecorder interface {
	HintCharged(t problem.Type, xp int)
}

// Deps are the long-lived collaborators shared by every quiz screen.
// Events and Hints may be nil.
type Deps struct {
	Sessions *session.Manager
	Tracker  *progression.Tracker
	Wallet   *xp.Wallet
	Events   store.EventRepo
	Hints    HintRecorder
	Logger   *zap.Logger

	// HintConfig returns the hint schedule per problem type. Defaults to
	// hint.ConfigFor.
	HintConfig func(problem.Type) hint.Config
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) hintConfig(t problem.Type) hint.Config {
	if d.HintConfig == nil {
		return hint.ConfigFor(t)
	}
	return d.HintConfig(t)
}

// journal runs write against the event repo. Journal failures never
// interrupt a quiz; they are logged and dropped.
func (d Deps) journal(what string, write func(ctx context.Context, repo store.EventRepo) error) {
	if d.Events == nil {
		return
	}
	if err := write(context.Background(), d.Events); err != nil {
		d.logger().Warn("journal write failed", zap.String("event", what), zap.Error(err))
	}
}
