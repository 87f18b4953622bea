package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, ts, session_id, action, problem_type, level,
		 problems_served, correct_answers, accuracy, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.Action, data.ProblemType, data.Level,
		data.ProblemsServed, data.CorrectAnswers, data.Accuracy, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT
			e.session_id, e.problem_type, e.level, e.ts,
			e.problems_served, e.correct_answers, e.accuracy, e.duration_secs,
			COALESCE((SELECT SUM(h.xp_deducted) FROM hint_events h WHERE h.session_id = e.session_id), 0)
		FROM session_events e
		WHERE e.action = ?
		ORDER BY e.sequence DESC
		LIMIT ?`, ActionEnd, limit)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.ProblemType, &rec.Level, &ts,
			&rec.ProblemsServed, &rec.CorrectAnswers, &rec.Accuracy, &rec.DurationSecs,
			&rec.HintXP); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}
