package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO hint_events
		(sequence, ts, session_id, problem_id, problem_type, step, xp_deducted)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.ProblemID, data.ProblemType,
		data.Step, data.XPDeducted,
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) TotalHintXP(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(xp_deducted), 0) FROM hint_events`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("query hint XP: %w", err)
	}
	return total, nil
}
