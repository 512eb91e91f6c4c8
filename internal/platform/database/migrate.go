package database

import (
	"context"
	"fmt"
)

// migrations are idempotent and run in order on every start.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id           TEXT NOT NULL,
		topic_slug        TEXT NOT NULL,
		display_title     TEXT NOT NULL DEFAULT '',
		current_module_id INT NOT NULL DEFAULT 0,
		completed_modules INT[] NOT NULL DEFAULT '{}',
		quiz_scores       JSONB NOT NULL DEFAULT '{}'::jsonb,
		last_visited_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, topic_slug)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id         UUID PRIMARY KEY,
		user_id    TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL,
		data       JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS events_type_created_at_idx ON events (event_type, created_at)`,
	`CREATE INDEX IF NOT EXISTS user_progress_last_visited_idx ON user_progress (user_id, last_visited_at DESC)`,
}

// Migrate creates the tables the service needs.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
