package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema statements, applied in order. Each is idempotent so the migration
// can run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS boards (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		board_id INTEGER NOT NULL REFERENCES boards (id) ON DELETE CASCADE,
		column_id TEXT NOT NULL,
		column_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_board_column_idx
		ON tasks (board_id, column_id, column_order)`,
	// Legacy task creation may omit board_id, which falls back to board 1.
	`INSERT INTO boards (name)
		SELECT 'Main Board'
		WHERE NOT EXISTS (SELECT 1 FROM boards)`,
}

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
