// Package store persists test run history in SQLite. The history heuristic
// reads failure counts from it to rank tests by how often they broke recently.
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

// DefaultDBPath is where the CLI keeps the run history unless --db overrides it.
const DefaultDBPath = ".rankbench/history.db"

// Statuses accepted by RecordRun.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Run is one recorded test execution.
type Run struct {
	ID         int64
	TestName   string
	Status     string
	RecordedAt time.Time
}

// RunStore is the SQLite-backed run history.
type RunStore struct {
	db *sql.DB
}

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .rankbench) if it does not exist.
func Open(path string) (*RunStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &RunStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *RunStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersionV1); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersionV1 {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// RecordRun appends a run record with the current timestamp.
func (s *RunStore) RecordRun(testName, status string) error {
	if testName == "" {
		return errors.New("test name is empty")
	}
	switch status {
	case StatusPassed, StatusFailed, StatusSkipped:
	default:
		return fmt.Errorf("unknown status %q (want passed, failed or skipped)", status)
	}
	_, err := s.db.Exec(
		"INSERT INTO runs(test_name, status, recorded_at) VALUES(?, ?, ?)",
		testName, status, nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FailureCounts returns how many times each test failed since the cutoff.
// Tests with no failures in the window are absent from the map.
func (s *RunStore) FailureCounts(since time.Time) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT test_name, COUNT(*) FROM runs
		 WHERE status = ? AND recorded_at >= ?
		 GROUP BY test_name`,
		StatusFailed, since.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("query failure counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan failure count: %w", err)
		}
		counts[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failure counts: %w", err)
	}
	return counts, nil
}

// RecentRuns returns the most recent runs, newest first, up to limit.
func (s *RunStore) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, test_name, status, recorded_at FROM runs
		 ORDER BY recorded_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var recorded string
		if err := rows.Scan(&r.ID, &r.TestName, &r.Status, &recorded); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, recorded); perr == nil {
			r.RecordedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	return runs, nil
}
