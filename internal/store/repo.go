package store

import (
	"context"
	"database/sql"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// Session event actions.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionAbandon = "abandon"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID      string
	Action         string
	ProblemType    string
	Level          string
	ProblemsServed int
	CorrectAnswers int
	Accuracy       int
	DurationSecs   int
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID   string
	ProblemID   string
	ProblemType string
	UserAnswer  string
	Correct     bool
	TimeMs      int64
}

// HintEventData captures one charged hint step.
type HintEventData struct {
	SessionID   string
	ProblemID   string
	ProblemType string
	Step        int
	XPDeducted  int
}

// SessionSummaryRecord is a finished session as shown in history.
type SessionSummaryRecord struct {
	SessionID      string
	ProblemType    string
	Level          string
	Timestamp      time.Time
	ProblemsServed int
	CorrectAnswers int
	Accuracy       int
	DurationSecs   int
	HintXP         int
}

// EventRepo provides append and query access to the quiz journal.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// TotalHintXP returns the XP spent on hints across all sessions.
	TotalHintXP(ctx context.Context) (int, error)
}

// eventRepo implements EventRepo with raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func newEventRepo(db *sql.DB, seq *sequenceCounter) *eventRepo {
	return &eventRepo{db: db, seq: seq, now: time.Now}
}
