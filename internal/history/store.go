// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local log of submitted searches in SQLite. It
// records what was asked and how it went; course results are never stored,
// so the log cannot stand in for the backend.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pathfinder/pkg/types"
)

const (
	dbFile       = "history.db"
	defaultLimit = 20
	driverName   = "sqlite3_history"
	maxQueryCol  = 60
)

// The history driver adds fold(text), a Unicode lower-casing function.
// SQLite's own lower() only folds ASCII.
func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", fold, true)
		},
	})
}

func fold(s string) string {
	return strings.ToLower(s)
}

// Source names the client that submitted a search.
type Source string

const (
	SourceCLI Source = "cli"
	SourceWeb Source = "web"
	SourceTUI Source = "tui"
)

// Entry is one logged search.
type Entry struct {
	ID      int64     `json:"id" yaml:"id"`
	Query   string    `json:"query" yaml:"query"`
	Results int       `json:"results" yaml:"results"`
	Error   string    `json:"error,omitempty" yaml:"error,omitempty"`
	Source  Source    `json:"source" yaml:"source"`
	At      time.Time `json:"at" yaml:"at"`
}

// Failed reports whether the search ended in an error.
func (e Entry) Failed() bool { return e.Error != "" }

// Recorder logs submitted searches. *Store implements it.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("history directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open(driverName, filepath.Join(cfg.Dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
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
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			results INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_at ON searches(at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e to the log. A zero At is stamped with the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (query, results, error, source, at) VALUES (?, ?, ?, ?, ?)`,
		e.Query, e.Results, e.Error, string(e.Source), e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, "", limit)
}

// Grep returns the latest entries whose query contains substr, ignoring
// case (Unicode-aware), newest first.
func (s *Store) Grep(ctx context.Context, substr string, limit int) ([]Entry, error) {
	return s.query(ctx, substr, limit)
}

func (s *Store) query(ctx context.Context, substr string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := `SELECT id, query, results, error, source, at FROM searches`
	var args []any
	if substr != "" {
		q += ` WHERE instr(fold(query), ?) > 0`
		args = append(args, fold(substr))
	}
	q += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var source, at string
		if err := rows.Scan(&e.ID, &e.Query, &e.Results, &e.Error, &source, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Source = Source(source)
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FormatTable writes entries as a human-readable table to w.
func FormatTable(entries []Entry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-6s  %-7s  %s\n", "When", "Source", "Results", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		results := fmt.Sprintf("%d", e.Results)
		if e.Failed() {
			results = "error"
		}
		query := e.Query
		if r := []rune(query); len(r) > maxQueryCol {
			query = string(r[:maxQueryCol-3]) + "..."
		}
		fmt.Fprintf(w, "%-20s  %-6s  %-7s  %s\n",
			e.At.Local().Format("2006-01-02 15:04:05"), e.Source, results, query)
	}
	fmt.Fprintf(w, "\n%d searches\n", len(entries))
}
