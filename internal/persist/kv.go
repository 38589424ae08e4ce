// Package persist provides the durable key-value shim the stores use
// to carry state across process restarts.
package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// KV is a durable key-value store. Write replaces the value under key;
// Read returns the stored value and whether the key was present.
type KV interface {
	Write(key string, value []byte) error
	Read(key string) ([]byte, bool, error)
}

// SQLiteKV implements KV on a local SQLite database.
type SQLiteKV struct {
	db *sqlx.DB
}

// OpenSQLiteKV opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and creates the kv table if needed.
func OpenSQLiteKV(dbPath string) (*SQLiteKV, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// Write inserts or replaces the value stored under key.
func (s *SQLiteKV) Write(key string, value []byte) error {
	const query = `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)`
	if _, err := s.db.Exec(
		query, key, value, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Read returns the value stored under key, with ok=false when the key
// has never been written.
func (s *SQLiteKV) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.Get(&value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}
