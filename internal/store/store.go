package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - no schema
// 1 - initial card tables and session trail
// 2 - completed_session
const currentSchemaVersion = 2

// MemoryLocation selects the in-memory strategy.
const MemoryLocation = ":memory:"

// Strategy tells where the cache lives.
type Strategy int

const (
	// Memory keeps the cache for the lifetime of the connection only.
	Memory Strategy = iota
	// Disk persists the cache to a file.
	Disk
)

func (s Strategy) String() string {
	if s == Memory {
		return "memory"
	}
	return "disk"
}

// StrategyFor maps a location to its strategy.
func StrategyFor(location string) Strategy {
	if location == MemoryLocation || location == "" {
		return Memory
	}
	return Disk
}

// Option configures Connect.
type Option func(*Store)

// WithSessionTime fixes the session timestamp instead of reading the clock.
func WithSessionTime(t time.Time) Option {
	return func(s *Store) {
		s.session = formatSession(t)
	}
}

// WithLatestSession reopens the most recent session recorded in the trail or
// marked complete, so maintenance commands act on the last sync instead of a
// fresh session. It falls back to the current time when neither has rows.
func WithLatestSession() Option {
	return func(s *Store) {
		s.resume = true
	}
}

// Store is a handle on the card cache.
//
// A Store owns exactly one SQLite connection and one session timestamp,
// captured when the connection opens and never mutated afterwards. It
// assumes a single writer and must not be shared across goroutines without
// external synchronisation.
type Store struct {
	db       *sql.DB
	location string
	strategy Strategy
	session  string
	resume   bool
}

// Connect opens the cache at location, which is either MemoryLocation or a
// file path, and bootstraps the schema if absent.
//
// This function is idempotent - safe to call multiple times on the same path.
func Connect(location string, opts ...Option) (*Store, error) {
	s := &Store{
		location: location,
		strategy: StrategyFor(location),
		session:  formatSession(time.Now()),
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := location
	if s.strategy == Memory {
		dsn = MemoryLocation
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// One connection: the in-memory database lives and dies with it, and
	// SQLite only supports one writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	if err := applyPragmas(db, s.strategy); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if s.resume {
		if err := s.resumeSession(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	s.db = db
	return s, nil
}

// Disconnect checkpoints a disk cache back into its main file and closes the
// connection. Calling it twice is a no-op.
func (s *Store) Disconnect() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil

	if s.strategy == Disk {
		for _, pragma := range []string{
			"PRAGMA wal_checkpoint(RESTART)",
			"PRAGMA journal_mode = DELETE",
		} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return fmt.Errorf("checkpoint: %q: %w", pragma, err)
			}
		}
	}

	return db.Close()
}

// Session returns the session timestamp shared by every reconciliation made
// through this handle.
func (s *Store) Session() string {
	return s.session
}

// Location returns the location the store was opened with.
func (s *Store) Location() string {
	return s.location
}

// Strategy returns whether the store is in memory or on disk.
func (s *Store) Strategy() Strategy {
	return s.strategy
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer the transactional API.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Update runs fn inside one transaction, committing when fn returns nil and
// rolling back otherwise.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if s.db == nil {
		return ErrClosed
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback() // No-op if committed

	if err := fn(&Tx{tx: sqlTx, session: s.session}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// View runs fn inside one transaction for reads. It shares Update's
// discipline so a read sees one consistent snapshot.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	return s.Update(ctx, fn)
}

func (s *Store) resumeSession(db *sql.DB) error {
	var latest sql.NullString
	err := db.QueryRow(`
		SELECT MAX(session_timestamp) FROM (
			SELECT session_timestamp FROM trail
			UNION ALL
			SELECT session_timestamp FROM completed_session
		)
	`).Scan(&latest)
	if err != nil {
		return fmt.Errorf("select latest session: %w", err)
	}
	if latest.Valid {
		s.session = latest.String
	}
	return nil
}

// sessionLayout is RFC 3339 with fixed-width nanoseconds so sessions sort
// as text.
const sessionLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatSession(t time.Time) string {
	return t.UTC().Format(sessionLayout)
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB, strategy Strategy) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
	}
	if strategy == Disk {
		pragmas = append(pragmas,
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA busy_timeout = 5000",
		)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the version.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("cache schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
