package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bkyoung/riff/internal/store"
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	-- Metadata about each filtering run
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		mode TEXT NOT NULL,
		target TEXT,
		repository TEXT NOT NULL,
		total_violations INTEGER NOT NULL DEFAULT 0,
		kept_violations INTEGER NOT NULL DEFAULT 0
	);

	-- Violations that survived filtering, per run
	CREATE TABLE IF NOT EXISTS violations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		error_code TEXT NOT NULL,
		path TEXT NOT NULL,
		line_start INTEGER NOT NULL,
		line_end INTEGER NOT NULL,
		message TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_violations_run ON violations(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// CreateRun inserts a run record.
func (s *Store) CreateRun(ctx context.Context, run store.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, timestamp, mode, target, repository, total_violations, kept_violations)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Timestamp.Unix(), run.Mode, run.Target, run.Repository,
		run.TotalViolations, run.KeptViolations)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun retrieves a run record by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, timestamp, mode, target, repository, total_violations, kept_violations
		 FROM runs WHERE run_id = ?`, runID)

	var run store.Run
	var ts int64
	if err := row.Scan(&run.RunID, &ts, &run.Mode, &run.Target, &run.Repository,
		&run.TotalViolations, &run.KeptViolations); err != nil {
		return store.Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	run.Timestamp = time.Unix(ts, 0)
	return run, nil
}

// RecordViolations inserts the surviving violations of a run.
func (s *Store) RecordViolations(ctx context.Context, violations []store.RunViolation) error {
	if len(violations) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO violations (run_id, error_code, path, line_start, line_end, message)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range violations {
		if _, err := stmt.ExecContext(ctx, v.RunID, v.ErrorCode, v.Path, v.LineStart, v.LineEnd, v.Message); err != nil {
			return fmt.Errorf("insert violation: %w", err)
		}
	}
	return tx.Commit()
}

// ListViolations returns the recorded violations of a run in insertion order.
func (s *Store) ListViolations(ctx context.Context, runID string) ([]store.RunViolation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, error_code, path, line_start, line_end, message
		 FROM violations WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	defer rows.Close()

	var out []store.RunViolation
	for rows.Next() {
		var v store.RunViolation
		if err := rows.Scan(&v.RunID, &v.ErrorCode, &v.Path, &v.LineStart, &v.LineEnd, &v.Message); err != nil {
			return nil, fmt.Errorf("scan violation: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
