// Package localstore is the machine-local key-value database. Unlike the
// vault's .app documents it never syncs: it holds the sync token, a mirror
// of UI settings, and the registry of encrypted notes.
package localstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// SecretSyncToken is the secret name the git sync token is stored under.
const SecretSyncToken = "sync-token"

func appDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(home, ".local", "share", "notevault")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// Store wraps the local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database in the per-user data directory.
func Open() (*Store, error) {
	dir, err := appDataDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "local.db"))
}

// OpenAt opens the database at an explicit path.
func OpenAt(path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the value for key, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts a settings key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Secret returns a named secret, or "" when absent.
func (s *Store) Secret(name string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM secrets WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("secret %s: %w", name, err)
	}
	return value, nil
}

// SetSecret upserts a named secret. Secrets never leave this database.
func (s *Store) SetSecret(name, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO secrets(name, value) VALUES(?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value,
	)
	if err != nil {
		return fmt.Errorf("set secret %s: %w", name, err)
	}
	return nil
}

// DeleteSecret removes a named secret. Deleting an absent secret is a no-op.
func (s *Store) DeleteSecret(name string) error {
	if _, err := s.db.Exec(`DELETE FROM secrets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete secret %s: %w", name, err)
	}
	return nil
}

// MarkEncrypted records that the note at path is stored encrypted.
func (s *Store) MarkEncrypted(path string) error {
	_, err := s.db.Exec(
		`INSERT INTO encrypted_notes(path) VALUES(?) ON CONFLICT(path) DO NOTHING`,
		path,
	)
	if err != nil {
		return fmt.Errorf("mark encrypted: %w", err)
	}
	return nil
}

// IsMarked reports whether path is registered as encrypted.
func (s *Store) IsMarked(path string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM encrypted_notes WHERE path = ?`, path).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check encrypted: %w", err)
	}
	return n > 0, nil
}

// Unmark removes path from the encrypted registry.
func (s *Store) Unmark(path string) error {
	if _, err := s.db.Exec(`DELETE FROM encrypted_notes WHERE path = ?`, path); err != nil {
		return fmt.Errorf("unmark encrypted: %w", err)
	}
	return nil
}
