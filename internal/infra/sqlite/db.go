// Package sqlite provides the durable local store behind the persistence
// adapter. The application persists whole named collections as JSON
// documents, mirroring the key-value contract every page shares, so the
// schema is a single collections table rather than one table per record
// type.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// DB wraps the SQLite connection.
type DB struct {
	db *sql.DB
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS collections (
			key        TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
}

// Open opens (creating if needed) the database under the given directory.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := filepath.Join(dir, "khata.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single local writer; serialize access at the pool level.
	db.SetMaxOpenConns(1)

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Collection Operations ──────────────────────────────────────────────────

// GetCollection returns the raw JSON payload stored under key.
// A missing key returns (nil, false, nil).
func (db *DB) GetCollection(key string) ([]byte, bool, error) {
	var data string
	err := db.db.QueryRow(`
		SELECT data FROM collections WHERE key = ?
	`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(data), true, nil
}

// PutCollection fully overwrites the payload stored under key.
func (db *DB) PutCollection(key string, data []byte) error {
	_, err := db.db.Exec(`
		INSERT INTO collections (key, data, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			data       = excluded.data,
			updated_at = datetime('now')
	`, key, string(data))
	return err
}

// DeleteCollection removes a stored collection. Missing keys are a no-op.
func (db *DB) DeleteCollection(key string) error {
	_, err := db.db.Exec(`DELETE FROM collections WHERE key = ?`, key)
	return err
}

// ListKeys returns all stored collection keys in sorted order.
func (db *DB) ListKeys() ([]string, error) {
	rows, err := db.db.Query(`SELECT key FROM collections ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
