package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/doodle/internal/logger"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite stores blobs in a single table of an SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path with WAL journaling
// and a busy timeout, so readers in other goroutines do not block the UI loop's writes.
// The path ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open '%s': %w", path, err)
	}
	if path == ":memory:" {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	logger.Infof("Storage: opened SQLite store at %s", path)
	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: save '%s': %w", key, err)
	}
	return nil
}

func (s *SQLite) Load(key string) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: load '%s': %w", key, err)
	}
	return blob, true, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Open returns a SQLite store at path, or a Memory store when path is empty.
// A database that fails to open is logged and replaced by memory: a broken
// store must never stop a drawing session.
func Open(path string) Store {
	if path == "" {
		logger.Infof("Storage: no database path configured, drawing will not persist")
		return NewMemory()
	}
	s, err := OpenSQLite(path)
	if err != nil {
		logger.Errorf("Storage: %v. Falling back to in-memory store.", err)
		return NewMemory()
	}
	return s
}
