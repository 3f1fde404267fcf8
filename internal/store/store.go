// Package store keeps the dashboard's history in SQLite: recorded risk
// assessments, logged LLM calls and trained model artifacts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"
)

// connPragmas run once per Open. WAL lets the CLI read history while the
// dashboard writes assessments.
var connPragmas = [...]struct{ name, value string }{
	{"journal_mode", "WAL"},
	{"busy_timeout", "5000"},
	{"foreign_keys", "ON"},
	{"synchronous", "NORMAL"},
}

// Store is an open history database.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open connects to the database at dsn, migrates it and primes the event
// sequence. dsn is a file path or any modernc sqlite DSN.
func Open(ctx context.Context, dsn string) (st *Store, err error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, db.Close())
		}
	}()

	for _, p := range connPragmas {
		stmt := "PRAGMA " + p.name + " = " + p.value
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("store: %s: %w", stmt, err)
		}
	}
	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(ctx, drv); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	seq, err := newSequenceCounter(ctx, db)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, drv: drv, seq: seq}, nil
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

// EventRepo records assessments and LLM calls.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

// ArtifactRepo persists trained models keyed by dataset fingerprint.
func (s *Store) ArtifactRepo() ArtifactRepo {
	return &artifactRepo{drv: s.drv}
}

// ResolvePath picks the database file: configured when non-empty, then
// DROPWATCH_DB, then dropwatch/dropwatch.db under the XDG data directory.
// The parent directory is created.
func ResolvePath(configured string) (string, error) {
	path := configured
	if path == "" {
		path = os.Getenv("DROPWATCH_DB")
	}
	if path == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("store: locate data dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		path = filepath.Join(base, "dropwatch", "dropwatch.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("store: create %s: %w", filepath.Dir(path), err)
	}
	return path, nil
}
