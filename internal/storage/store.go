// Package storage is the durable Job Store and Config Registry, backed by a
// single SQLite database file opened in WAL mode.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the queue's SQLite handle. All job and config persistence
// goes through it; it is the only shared mutable resource workers contend
// on.
type Store struct {
	Db *sql.DB
}

// NewStore opens (creating if necessary) the SQLite database at dbPath and
// ensures the schema exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// pick_and_lock relies on a single writer serializing claims; SQLite
	// itself only allows one writer at a time regardless, but capping the
	// pool avoids SQLITE_BUSY churn under concurrent workers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	store := &Store{Db: db}
	if err := store.init(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *Store) init() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS jobs (
		id                  TEXT PRIMARY KEY,
		command             TEXT NOT NULL,
		replayable_command  TEXT NOT NULL,
		state               TEXT NOT NULL DEFAULT 'pending',
		attempts            INTEGER NOT NULL DEFAULT 0,
		max_retries         INTEGER NOT NULL DEFAULT 3,
		run_after           DATETIME NOT NULL,
		timeout_sec         INTEGER NOT NULL DEFAULT 0,
		priority            INTEGER NOT NULL DEFAULT 0,
		created_at          DATETIME NOT NULL,
		updated_at          DATETIME NOT NULL,
		last_error          TEXT,
		stdout              TEXT,
		stderr              TEXT,
		exit_code           INTEGER,
		runtime_sec         INTEGER,
		trace_created_at    DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_jobs_state ON jobs(state);
	CREATE INDEX IF NOT EXISTS idx_jobs_run_after ON jobs(run_after);
	CREATE INDEX IF NOT EXISTS idx_jobs_priority ON jobs(priority);

	CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.Db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.Db.Close()
}
