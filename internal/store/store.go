// Package store is the SQLite coordination layer shared by all hook and
// watcher processes. Processes never talk to each other directly; every
// state transition is a conditional UPDATE whose affected-row count tells
// the caller whether it won the transition.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrationsFS embed.FS

const (
	busyTimeout  = 30 * time.Second
	openAttempts = 3
	execAttempts = 3
	execBackoff  = 50 * time.Millisecond
)

// Store wraps the shared SQLite database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the database at path and applies the
// schema. A corrupted database file is removed and recreated; losing
// pending notifications is preferable to leaving every hook broken.
func Open(path string, log zerolog.Logger) (*Store, error) {
	var lastErr error
	for attempt := 1; attempt <= openAttempts; attempt++ {
		s, err := open(path, log)
		if err == nil {
			return s, nil
		}
		lastErr = err
		log.Error().Err(err).Int("attempt", attempt).Msg("database initialization failed")

		if isCorrupt(err) {
			removeDatabase(path)
			log.Info().Str("path", path).Msg("removed corrupted database, will recreate")
		}
		if attempt < openAttempts {
			time.Sleep(500 * time.Millisecond)
		}
	}
	return nil, fmt.Errorf("opening database %s: %w", path, lastErr)
}

func open(path string, log zerolog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()))
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	s := &Store{db: db, log: log}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// exec runs a statement with a bounded retry on transient lock errors.
// The busy_timeout pragma handles most contention; the retry covers the
// window where another process holds the schema lock during migration.
func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		lastErr error
	)
	for attempt := 1; attempt <= execAttempts; attempt++ {
		res, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil || !isBusy(lastErr) {
			return res, lastErr
		}
		time.Sleep(execBackoff)
	}
	return res, lastErr
}

func isCorrupt(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") ||
		strings.Contains(msg, "corrupt") ||
		strings.Contains(msg, "not a database")
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func removeDatabase(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
}

func nullStr(v string) any {
	if v == "" {
		return nil
	}
	return v
}
