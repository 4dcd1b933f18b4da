// Package store implements the persistent repository from spec §4.8: a
// single-file embedded relational database holding file metadata,
// detections, pattern posteriors, convention state and history, contested
// pairs, convention feedback, contracts and their children, crypto
// findings, detector health, and the violation-action audit trail.
//
// Grounded on _examples/theRebelliousNerd-codenerd/internal/northstar/
// store.go's single-file-DB + CREATE-TABLE-IF-NOT-EXISTS + upsert-by-
// natural-key shape, and the mind-palace index store's schema_version +
// ordered-migrations pattern (_examples/other_examples). Writes go through
// one *sql.DB (the batch writer, mutex-serialized per spec §5); reads use a
// second, read-only *sql.DB opened against the same WAL-mode file.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/debug"
	"github.com/standardbeagle/chorus/internal/errors"
)

// Store wraps a single-file sqlite database behind the single-writer /
// multi-reader split spec §5 requires: writer is serialized by mu, reader
// is a distinct connection that never blocks on the writer.
type Store struct {
	cfg config.Store

	mu     sync.Mutex
	writer *sql.DB
	reader *sql.DB

	pending []func(*sql.Tx) error
}

// Open creates (or attaches to) the database at cfg.Path. An empty Path
// opens an in-memory database, used by tests and by analyze() runs the
// caller doesn't want persisted.
func Open(cfg config.Store) (*Store, error) {
	dsn := cfg.Path
	if dsn == "" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, errors.NewStorageError("store.Open", false, err)
		}
	}

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStorageError("store.Open", false, err)
	}
	writer.SetMaxOpenConns(1)
	writer.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := writer.ExecContext(context.Background(), pragma); err != nil {
			_ = writer.Close()
			return nil, errors.NewStorageError("store.Open pragma", false, err)
		}
	}

	if err := ensureSchema(writer); err != nil {
		_ = writer.Close()
		return nil, errors.NewStorageError("store.Open schema", false, err)
	}

	var reader *sql.DB
	if dsn == ":memory:" {
		// A second connection to an in-memory database would see an empty
		// database; tests against Path=="" use the writer for reads too.
		reader = writer
	} else {
		reader, err = sql.Open("sqlite", dsn+"?mode=ro")
		if err != nil {
			_ = writer.Close()
			return nil, errors.NewStorageError("store.Open reader", false, err)
		}
	}

	s := &Store{cfg: cfg, writer: writer, reader: reader}
	debug.LogStore("opened %s", dsn)
	return s, nil
}

// Close releases both connections.
func (s *Store) Close() error {
	if s.reader != nil && s.reader != s.writer {
		_ = s.reader.Close()
	}
	return s.writer.Close()
}

// DB exposes the writer connection for packages that need raw access
// (e.g. the aggregator's health-score queries); prefer the typed methods
// below where one exists.
func (s *Store) DB() *sql.DB { return s.writer }

// ReadDB exposes the read-only connection for keyset-paginated queries.
func (s *Store) ReadDB() *sql.DB { return s.reader }

// batch runs fn inside an exclusive transaction on the writer connection,
// retrying once on failure per spec §7's storage-error recovery policy.
func (s *Store) batch(op string, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.runOnce(fn)
	if err == nil {
		return nil
	}

	debug.LogStore("%s failed, retrying once: %v", op, err)
	if err2 := s.runOnce(fn); err2 != nil {
		return errors.NewStorageError(op, true, err2)
	}
	return nil
}

func (s *Store) runOnce(fn func(tx *sql.Tx) error) error {
	tx, err := s.writer.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func nowString() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// BatchSize and BatchInterval expose the configured batch-writer tuning
// parameters (spec §4.8 "Writes are buffered through a batch writer") to
// the orchestrator, which owns the actual buffering/flush-on-interval
// decision since it is the component that knows when a scan phase ends.
func (s *Store) BatchSize() int {
	if s.cfg.BatchSize <= 0 {
		return 500
	}
	return s.cfg.BatchSize
}

func (s *Store) BatchInterval() time.Duration {
	ms := s.cfg.BatchIntervalMs
	if ms <= 0 {
		ms = 200
	}
	return time.Duration(ms) * time.Millisecond
}

// RetainObservations reports whether raw per-scan observations should be
// persisted alongside summary posteriors (Open Question (a): yes, by
// default).
func (s *Store) RetainObservations() bool { return s.cfg.RetainObservation }
