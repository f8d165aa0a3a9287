// Copyright q9good, 2026. All rights reserved.

// Package manifest persists per-file conversion outcomes in a SQLite
// database, giving the converter an audit trail independent of the
// output-file existence check.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/q9good/sse-crawler/internal/convert"
)

// Store manages the conversion manifest database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded conversion outcome.
type Entry struct {
	SourcePath    string
	OutputPath    string
	Status        convert.Status
	SourceModTime time.Time
	CompletedAt   time.Time
}

// Summary aggregates manifest contents by status.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of recorded sources.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// Open opens or creates the manifest database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source_path TEXT PRIMARY KEY,
			output_path TEXT NOT NULL,
			status TEXT NOT NULL,
			source_mod_time TEXT,
			completed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts the outcome for a source file. Re-running the converter
// refreshes the row, so the manifest always reflects the latest run that
// touched each source. Record implements convert.Recorder.
func (s *Store) Record(sourcePath, outputPath string, status convert.Status, sourceModTime time.Time) error {
	modTime := ""
	if !sourceModTime.IsZero() {
		modTime = sourceModTime.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.Exec(
		`INSERT INTO conversions (source_path, output_path, status, source_mod_time, completed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			output_path=excluded.output_path, status=excluded.status,
			source_mod_time=excluded.source_mod_time, completed_at=excluded.completed_at`,
		sourcePath, outputPath, string(status), modTime,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", sourcePath, err)
	}
	return nil
}

// Lookup returns the recorded entry for a source path, or nil when the
// source has never been recorded.
func (s *Store) Lookup(sourcePath string) (*Entry, error) {
	row := s.db.QueryRow(
		`SELECT source_path, output_path, status, source_mod_time, completed_at
		 FROM conversions WHERE source_path = ?`, sourcePath)

	var e Entry
	var status, modTime, completedAt string
	err := row.Scan(&e.SourcePath, &e.OutputPath, &status, &modTime, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", sourcePath, err)
	}

	e.Status = convert.Status(status)
	if modTime != "" {
		if t, parseErr := time.Parse(time.RFC3339Nano, modTime); parseErr == nil {
			e.SourceModTime = t
		}
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, completedAt); parseErr == nil {
		e.CompletedAt = t
	}
	return &e, nil
}

// Summarize aggregates recorded outcomes by status.
func (s *Store) Summarize() (Summary, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM conversions GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing manifest: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scanning summary row: %w", err)
		}
		switch convert.Status(status) {
		case convert.StatusConverted:
			summary.Converted = count
		case convert.StatusSkipped:
			summary.Skipped = count
		case convert.StatusFailed:
			summary.Failed = count
		}
	}
	return summary, rows.Err()
}

// Failures lists the sources whose last recorded outcome was a failure,
// ordered by source path.
func (s *Store) Failures() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT source_path, output_path, status, source_mod_time, completed_at
		 FROM conversions WHERE status = ? ORDER BY source_path`,
		string(convert.StatusFailed))
	if err != nil {
		return nil, fmt.Errorf("listing failures: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, modTime, completedAt string
		if err := rows.Scan(&e.SourcePath, &e.OutputPath, &status, &modTime, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning failure row: %w", err)
		}
		e.Status = convert.Status(status)
		if t, parseErr := time.Parse(time.RFC3339Nano, completedAt); parseErr == nil {
			e.CompletedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
