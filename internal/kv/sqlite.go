package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	store  TEXT NOT NULL,
	name   TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (store, name)
);`

const upsertSQL = `INSERT INTO kv (store, name, value) VALUES (?, ?, ?)
ON CONFLICT(store, name) DO UPDATE SET value = excluded.value`

// SQLiteStore keeps the namespace in an embedded SQLite database at
// <baseDir>/contactbook.db. Several namespaces may share one database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	name string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if needed) the database under baseDir.
// Callers must Close the returned store.
func OpenSQLiteStore(baseDir, name string) (*SQLiteStore, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: creating directory: %w", err)
	}

	path := filepath.Join(baseDir, "contactbook.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("kv: opening %s: %w", path, err)
	}
	// One connection keeps writes serialized without busy retries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: initializing schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path, name: name}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE store = ? AND name = ?`, s.name, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv: get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(upsertSQL, s.name, key, value)
	if err != nil {
		return fmt.Errorf("kv: set %q: %w", key, err)
	}
	return nil
}

// Rename deletes oldKey and upserts newKey in a single transaction.
func (s *SQLiteStore) Rename(oldKey, newKey, value string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("kv: rename %q: %w", oldKey, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(`DELETE FROM kv WHERE store = ? AND name = ?`, s.name, oldKey); err != nil {
		return fmt.Errorf("kv: rename %q: %w", oldKey, err)
	}
	if _, err := tx.Exec(upsertSQL, s.name, newKey, value); err != nil {
		return fmt.Errorf("kv: rename %q to %q: %w", oldKey, newKey, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kv: rename %q: %w", oldKey, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE store = ? AND name = ?`, s.name, key); err != nil {
		return fmt.Errorf("kv: remove %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetAll() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, value FROM kv WHERE store = ?`, s.name)
	if err != nil {
		return nil, fmt.Errorf("kv: listing: %w", err)
	}
	defer rows.Close()

	m := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("kv: scanning row: %w", err)
		}
		m[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv: listing: %w", err)
	}
	return m, nil
}

func (s *SQLiteStore) Contains(key string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM kv WHERE store = ? AND name = ?`, s.name, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("kv: contains %q: %w", key, err)
	}
	return n > 0, nil
}
