package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known document names under <vault>/.app.
const (
	TasksDoc       = "tasks.json"
	TaskFoldersDoc = "taskFolders.json"
	RoutinesDoc    = "routines.json"
	SettingsDoc    = "settings.json"
	GitConfigDoc   = "git-config.json"
)

// Store persists whole-document JSON files under the vault's .app directory.
// Every write rewrites the full document; there is no partial update.
type Store struct {
	dir string
}

// New returns a store rooted at vaultPath. The .app directory is created
// on first use.
func New(vaultPath string) *Store {
	return &Store{dir: filepath.Join(vaultPath, ".app")}
}

// Dir returns the directory documents are stored in.
func (s *Store) Dir() string { return s.dir }

// ReadDoc unmarshals the named document into v. A missing document leaves v
// at its zero value and returns nil: absent state is empty state.
func (s *Store) ReadDoc(name string, v any) error {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// WriteDoc marshals v with two-space indentation and rewrites the named
// document in full.
func (s *Store) WriteDoc(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
