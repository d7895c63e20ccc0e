package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Timestamps are stored as Unix milliseconds.
var createEventTables = []string{
	`CREATE TABLE IF NOT EXISTS progress_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL UNIQUE,
		game TEXT NOT NULL DEFAULT '',
		player TEXT NOT NULL DEFAULT '',
		final_score INTEGER NOT NULL,
		questions_answered INTEGER NOT NULL,
		questions_total INTEGER NOT NULL,
		correct_answers INTEGER NOT NULL,
		best_streak INTEGER NOT NULL,
		completion_ratio REAL NOT NULL,
		elapsed_secs INTEGER NOT NULL,
		expired INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS progress_summaries_game ON progress_summaries (game)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		game TEXT NOT NULL DEFAULT '',
		question_index INTEGER NOT NULL,
		kind TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		question_text TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		selected TEXT NOT NULL,
		correct INTEGER NOT NULL,
		points INTEGER NOT NULL,
		streak INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		game TEXT NOT NULL DEFAULT '',
		question_count INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS celebration_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		rarity TEXT NOT NULL,
		reason TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for _, stmt := range createEventTables {
				if _, err := db.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("create event tables: %w", err)
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			for _, table := range []string{"celebration_events", "session_events", "answer_events", "progress_summaries"} {
				if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
					return fmt.Errorf("drop %s: %w", table, err)
				}
			}
			return nil
		},
	)
}
