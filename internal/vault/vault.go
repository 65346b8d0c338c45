package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Vault is the root directory tree holding all notes, attachments and
// app-managed JSON stores.
type Vault struct {
	Root string
}

func New(root string) *Vault { return &Vault{Root: root} }

// DefaultRoot returns ~/Documents/NotesVault.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents", "NotesVault"), nil
}

// Init creates the vault skeleton. Safe to run on an existing vault.
func (v *Vault) Init() error {
	dirs := []string{
		v.Root,
		filepath.Join(v.Root, ".app"),
		filepath.Join(v.Root, "Notes"),
		filepath.Join(v.Root, "Notes", "Daily"),
		filepath.Join(v.Root, "Notes", "Projects"),
		filepath.Join(v.Root, "Attachments"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// NotesDir returns the directory regular notes live under.
func (v *Vault) NotesDir() string { return filepath.Join(v.Root, "Notes") }

// Entry is one file or directory inside the vault.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// List returns the entries of dir, skipping dot-prefixed names, directories
// first and each group lexicographic by name. A missing or unreadable
// directory yields an empty listing, not an error.
func (v *Vault) List(dir string) []Entry {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		entries = append(entries, Entry{
			Name:  de.Name(),
			Path:  filepath.Join(dir, de.Name()),
			IsDir: de.IsDir(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Node is a directory tree rooted at one entry.
type Node struct {
	Entry
	Children []Node
}

// Tree lists dir recursively.
func (v *Vault) Tree(dir string) []Node {
	entries := v.List(dir)
	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		n := Node{Entry: e}
		if e.IsDir {
			n.Children = v.Tree(e.Path)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// ReadNote returns the raw contents of a note file.
func (v *Vault) ReadNote(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(b), nil
}

// WriteNote rewrites a note file in full.
func (v *Vault) WriteNote(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

// CreateNote creates an empty file at path.
func (v *Vault) CreateNote(path string) error {
	return v.WriteNote(path, "")
}

// CreateFolder creates a directory, parents included.
func (v *Vault) CreateFolder(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// Delete removes a note, or a directory and everything under it.
func (v *Vault) Delete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Rename moves oldPath to newPath. Moving across directories and renaming in
// place are the same primitive.
func (v *Vault) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ResolveWikiLink maps a [[name]] reference to a note path. Resolution order:
// exact Notes/<name>.md, then a recursive search of the Notes subtree, and
// finally a new note Notes/<name>.md seeded with a title header.
// created reports whether a new note was written.
func (v *Vault) ResolveWikiLink(name string) (path string, created bool, err error) {
	exact := filepath.Join(v.NotesDir(), name+".md")
	if _, statErr := os.Stat(exact); statErr == nil {
		return exact, false, nil
	}

	if found := v.findNote(v.NotesDir(), name+".md"); found != "" {
		return found, false, nil
	}

	content := fmt.Sprintf("# %s\n\n", name)
	if err := v.WriteNote(exact, content); err != nil {
		return "", false, err
	}
	return exact, true, nil
}

func (v *Vault) findNote(dir, filename string) string {
	for _, e := range v.List(dir) {
		if e.IsDir {
			if found := v.findNote(e.Path, filename); found != "" {
				return found
			}
		} else if e.Name == filename {
			return e.Path
		}
	}
	return ""
}
