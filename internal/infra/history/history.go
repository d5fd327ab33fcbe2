// Package history provides SQLite-backed persistence for LLM invocation
// records. Uses WAL mode for crash-safe writes.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/koda-tools/koda/internal/domain"
)

// Store wraps a SQLite connection with WAL mode and migrations.
// It implements domain.InvocationStore.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at dir/history.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close cleanly shuts down the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS invocations (
			id                TEXT PRIMARY KEY,
			timestamp         INTEGER NOT NULL,
			command           TEXT NOT NULL,
			model             TEXT NOT NULL,
			prompt_tokens     INTEGER NOT NULL DEFAULT 0,
			completion_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens      INTEGER NOT NULL DEFAULT 0,
			duration_ms       INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_ts ON invocations(timestamp)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Record inserts one invocation.
func (s *Store) Record(inv domain.Invocation) error {
	_, err := s.db.Exec(
		`INSERT INTO invocations (id, timestamp, command, model, prompt_tokens, completion_tokens, total_tokens, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Timestamp.Unix(),
		inv.Command,
		inv.Model,
		inv.Usage.PromptTokens,
		inv.Usage.CompletionTokens,
		inv.Usage.TotalTokens,
		inv.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}
	return nil
}

// List returns the most recent invocations, newest first.
func (s *Store) List(limit int) ([]domain.Invocation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, timestamp, command, model, prompt_tokens, completion_tokens, total_tokens, duration_ms
		 FROM invocations ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var out []domain.Invocation
	for rows.Next() {
		var inv domain.Invocation
		var ts int64
		var durMS int64
		if err := rows.Scan(&inv.ID, &ts, &inv.Command, &inv.Model,
			&inv.Usage.PromptTokens, &inv.Usage.CompletionTokens, &inv.Usage.TotalTokens, &durMS); err != nil {
			return nil, err
		}
		inv.Timestamp = time.Unix(ts, 0)
		inv.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, inv)
	}
	return out, rows.Err()
}
