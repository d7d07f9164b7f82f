// Package store persists all user productivity and wellness data in a
// local SQLite database. Every record is owned by exactly one user and
// every query is scoped by user id; there are no cross-user reads.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite handle. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dir/sahay.db and runs
// migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "sahay.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id       TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quadrant    TEXT NOT NULL,
		status      TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);

	CREATE TABLE IF NOT EXISTS daily_entries (
		user_id       TEXT NOT NULL,
		year          INTEGER NOT NULL,
		month         INTEGER NOT NULL,
		day           INTEGER NOT NULL,
		mood          TEXT NOT NULL,
		summary       TEXT NOT NULL DEFAULT '',
		wellness_data TEXT,
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (user_id, year, month, day)
	);

	CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id        TEXT NOT NULL,
		work_duration  INTEGER NOT NULL,
		break_duration INTEGER NOT NULL,
		preset_id      INTEGER NOT NULL DEFAULT 0,
		completed      INTEGER NOT NULL DEFAULT 1,
		timestamp      TEXT NOT NULL,
		year           INTEGER NOT NULL,
		month          INTEGER NOT NULL,
		day            INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pomodoro_user_month
		ON pomodoro_sessions(user_id, year, month);

	CREATE TABLE IF NOT EXISTS wearable_devices (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		device_id   TEXT NOT NULL,
		device_type TEXT NOT NULL,
		device_name TEXT NOT NULL DEFAULT '',
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		last_sync   TEXT,
		UNIQUE (user_id, device_id)
	);

	CREATE TABLE IF NOT EXISTS wearable_readings (
		user_id    TEXT NOT NULL,
		device_id  TEXT NOT NULL,
		date       TEXT NOT NULL,
		metrics    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, device_id, date)
	);

	CREATE TABLE IF NOT EXISTS wearable_insights (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id              TEXT NOT NULL,
		insight_date         TEXT NOT NULL,
		analysis_type        TEXT NOT NULL,
		recovery_score       INTEGER NOT NULL,
		sleep_debt_hours     REAL NOT NULL DEFAULT 0,
		stress_level         TEXT NOT NULL DEFAULT '',
		focus_recommendation TEXT NOT NULL DEFAULT '',
		focus_minutes        INTEGER NOT NULL DEFAULT 0,
		break_minutes        INTEGER NOT NULL DEFAULT 0,
		confidence           REAL NOT NULL DEFAULT 0,
		payload              TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL,
		UNIQUE (user_id, insight_date, analysis_type)
	);

	CREATE TABLE IF NOT EXISTS wellness_summaries (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id      TEXT NOT NULL,
		summary      TEXT NOT NULL,
		emotions     TEXT NOT NULL DEFAULT '[]',
		focus_areas  TEXT NOT NULL DEFAULT '[]',
		tags         TEXT NOT NULL DEFAULT '[]',
		stress_level TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_summaries_user ON wellness_summaries(user_id);

	CREATE TABLE IF NOT EXISTS analysis_results (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id       TEXT NOT NULL,
		analysis_type TEXT NOT NULL,
		result        TEXT NOT NULL,
		created_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recommended_tasks (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		quadrant     TEXT NOT NULL,
		status       TEXT NOT NULL,
		due_date     TEXT NOT NULL,
		from_session TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_rec_tasks_user ON recommended_tasks(user_id);

	CREATE TABLE IF NOT EXISTS wellness_pathways (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		name          TEXT NOT NULL,
		pathway_type  TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		duration_days INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		progress      INTEGER NOT NULL DEFAULT 0,
		from_session  TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recommendations (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		from_session TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		name         TEXT NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		duration     TEXT NOT NULL DEFAULT '',
		best_for     TEXT NOT NULL DEFAULT '',
		from_session TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_sessions (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		mode               TEXT NOT NULL DEFAULT '',
		analysis           TEXT NOT NULL DEFAULT '',
		analysis_completed INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// now returns the canonical timestamp format stored in TEXT columns.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
