// Package history keeps a SQLite log of lgrep runs.
//
// Each recorded run stores its patterns, sources, counters and exit status
// under a random UUID. Schema creation is serialised across processes with
// a lock file next to the database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/lgrep/internal/filelock"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// RunRecord represents a single recorded lgrep run
type RunRecord struct {
	ID             uuid.UUID
	StartedAt      time.Time
	Duration       time.Duration
	Patterns       []string
	Sources        []string
	Dialect        string
	Invert         bool
	SourcesScanned int
	LinesScanned   int
	MatchedLines   int
	Errors         int
	ExitCode       int
}

// Store manages the SQLite run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	var store *Store
	err := filelock.WithLock(dbPath, func() error {
		s, err := openAndInitStore(dbPath)
		store = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout must be first so later statements wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on lock errors.
func execWithRetry(db *sql.DB, query string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(query)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts run. A nil ID is replaced with a fresh UUID and a zero
// StartedAt with the current time; both are written back to run.
func (s *Store) Record(ctx context.Context, run *RunRecord) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	patterns, err := marshalList(run.Patterns)
	if err != nil {
		return fmt.Errorf("marshal patterns: %w", err)
	}
	sources, err := marshalList(run.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}

	query := `INSERT INTO runs
		(id, started_at, duration_ms, patterns, sources, dialect, invert, sources_scanned, lines_scanned, matched_lines, errors, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		run.ID.String(),
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
		patterns,
		sources,
		run.Dialect,
		run.Invert,
		run.SourcesScanned,
		run.LinesScanned,
		run.MatchedLines,
		run.Errors,
		run.ExitCode,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, most recent first
func (s *Store) Recent(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT id, started_at, duration_ms, patterns, sources, dialect, invert, sources_scanned, lines_scanned, matched_lines, errors, exit_code
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		run := &RunRecord{}
		var id, patterns, sources string
		var durationMS int64
		err := rows.Scan(
			&id,
			&run.StartedAt,
			&durationMS,
			&patterns,
			&sources,
			&run.Dialect,
			&run.Invert,
			&run.SourcesScanned,
			&run.LinesScanned,
			&run.MatchedLines,
			&run.Errors,
			&run.ExitCode,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(patterns), &run.Patterns); err != nil {
			return nil, fmt.Errorf("unmarshal patterns: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &run.Sources); err != nil {
			return nil, fmt.Errorf("unmarshal sources: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}

// Count returns the number of recorded runs
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

func marshalList(items []string) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Summary renders run as a single history listing line
func (r *RunRecord) Summary() string {
	return fmt.Sprintf("%s  %s  exit=%d  matched=%d  sources=%d  errors=%d  patterns=%s",
		r.ID.String()[:8],
		r.StartedAt.Local().Format(time.DateTime),
		r.ExitCode,
		r.MatchedLines,
		r.SourcesScanned,
		r.Errors,
		strings.Join(quoteAll(r.Patterns), ","),
	)
}

func quoteAll(items []string) []string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return quoted
}
