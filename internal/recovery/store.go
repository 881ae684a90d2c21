// Package recovery persists the small slice of session state that must
// survive a client restart. Entries are versioned records: a payload
// written by a different schema version is treated as absent rather
// than misread.
package recovery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reteach/reteach-cli/internal/diagnostic"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SchemaVersion gates recovery payloads. Bump when a payload's JSON
// shape changes incompatibly.
const SchemaVersion = 1

// publishInfoKey is the record key for the last successful publish.
const publishInfoKey = "publishInfo"

// Store is the SQLite-backed recovery store.
type Store struct {
	db *sql.DB
}

// Open creates a Store at dsn, applying pragmas and the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS recovery (
			key        TEXT PRIMARY KEY,
			version    INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePublishInfo replaces the stored publish record wholesale.
func (s *Store) SavePublishInfo(ctx context.Context, info diagnostic.PublishInfo) error {
	return s.save(ctx, publishInfoKey, info)
}

// LoadPublishInfo returns the stored publish record. The second return
// is false when no record exists, the record was written by another
// schema version, or the payload does not parse.
func (s *Store) LoadPublishInfo(ctx context.Context) (diagnostic.PublishInfo, bool) {
	var info diagnostic.PublishInfo
	ok := s.load(ctx, publishInfoKey, &info)
	return info, ok && info.Complete()
}

// ClearPublishInfo removes the stored publish record.
func (s *Store) ClearPublishInfo(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recovery WHERE key = ?`, publishInfoKey)
	if err != nil {
		return fmt.Errorf("clear %s: %w", publishInfoKey, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recovery (key, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		key, SchemaVersion, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string, out any) bool {
	var version int
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT version, payload FROM recovery WHERE key = ?`, key).
		Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) || err != nil {
		return false
	}
	if version != SchemaVersion {
		return false
	}
	return json.Unmarshal([]byte(payload), out) == nil
}

// applyPragmas configures SQLite for single-user client use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the recovery database path in priority order:
// 1. RETEACH_DB environment variable
// 2. $XDG_DATA_HOME/reteach/reteach.db
// 3. ~/.local/share/reteach/reteach.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RETEACH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "reteach", "reteach.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
