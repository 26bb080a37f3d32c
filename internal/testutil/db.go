// Package testutil provides the in-memory sqlite database the repository,
// service, and handler tests run against. The repositories rebind their
// placeholders per driver, so the SQL under test is the same SQL that runs
// on postgres.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE boards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		board_id INTEGER NOT NULL REFERENCES boards (id) ON DELETE CASCADE,
		column_id TEXT NOT NULL,
		column_order INTEGER NOT NULL DEFAULT 0
	)`,
	`INSERT INTO boards (name) VALUES ('Main Board')`,
}

var dbCounter int64

// NewDB opens a fresh in-memory database with the schema applied and the
// default board seeded. The database is dropped when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	name := fmt.Sprintf("taskboard_test_%d", atomic.AddInt64(&dbCounter, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// A single connection keeps the shared-cache database alive and avoids
	// sqlite table locks between the pool's connections.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply test schema: %v", err)
		}
	}

	t.Cleanup(func() { db.Close() })
	return db
}
