package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, ts, session_id, problem_id, problem_type, user_answer, correct, time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.ProblemID, data.ProblemType,
		data.UserAnswer, data.Correct, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}
