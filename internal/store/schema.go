package store

import (
	"database/sql"
	"fmt"
)

// Every event table carries the global sequence so rows from different
// tables can be merged into one ordered history.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		problem_type TEXT NOT NULL,
		level TEXT NOT NULL DEFAULT '',
		problems_served INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		accuracy INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_action ON session_events (action, sequence)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		problem_id TEXT NOT NULL,
		problem_type TEXT NOT NULL,
		user_answer TEXT NOT NULL,
		correct INTEGER NOT NULL,
		time_ms INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_type ON answer_events (problem_type)`,
	`CREATE TABLE IF NOT EXISTS hint_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		problem_id TEXT NOT NULL,
		problem_type TEXT NOT NULL,
		step INTEGER NOT NULL,
		xp_deducted INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS hint_events_session ON hint_events (session_id)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
