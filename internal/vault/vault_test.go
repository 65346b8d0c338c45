package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v := New(t.TempDir())
	if err := v.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return v
}

func TestInitCreatesSkeleton(t *testing.T) {
	v := newTestVault(t)
	for _, dir := range []string{".app", "Notes", "Notes/Daily", "Notes/Projects", "Attachments"} {
		info, err := os.Stat(filepath.Join(v.Root, dir))
		if err != nil || !info.IsDir() {
			t.Fatalf("missing vault directory %s: %v", dir, err)
		}
	}
}

func TestListOrderingAndDotfiles(t *testing.T) {
	v := newTestVault(t)
	dir := filepath.Join(v.Root, "Notes")
	for _, name := range []string{"zebra.md", "apple.md", ".hidden.md"} {
		if err := v.CreateNote(filepath.Join(dir, name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := v.CreateFolder(filepath.Join(dir, "Work")); err != nil {
		t.Fatalf("create folder: %v", err)
	}

	entries := v.List(dir)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	// Dirs first, then files, each lexicographic; dotfiles skipped entirely.
	want := []string{"Daily", "Projects", "Work", "apple.md", "zebra.md"}
	if len(names) != len(want) {
		t.Fatalf("listing = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("listing[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	v := newTestVault(t)
	if entries := v.List(filepath.Join(v.Root, "no-such-dir")); len(entries) != 0 {
		t.Fatalf("expected empty listing, got %v", entries)
	}
}

func TestRenameMovesAcrossDirectories(t *testing.T) {
	v := newTestVault(t)
	src := filepath.Join(v.NotesDir(), "draft.md")
	dst := filepath.Join(v.NotesDir(), "Projects", "draft.md")
	if err := v.WriteNote(src, "hello"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := v.Rename(src, dst); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err := v.ReadNote(dst)
	if err != nil || got != "hello" {
		t.Fatalf("moved note unreadable: %q, %v", got, err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still exists after move")
	}
}

func TestDeleteRecursive(t *testing.T) {
	v := newTestVault(t)
	dir := filepath.Join(v.NotesDir(), "Old")
	if err := v.CreateFolder(dir); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if err := v.WriteNote(filepath.Join(dir, "a.md"), "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := v.Delete(dir); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("directory survived delete")
	}
}

func TestResolveWikiLinkExactMatch(t *testing.T) {
	v := newTestVault(t)
	want := filepath.Join(v.NotesDir(), "B.md")
	if err := v.WriteNote(want, "existing"); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, created, err := v.ResolveWikiLink("B")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if created || path != want {
		t.Fatalf("resolve = %s created=%v, want %s created=false", path, created, want)
	}
}

func TestResolveWikiLinkSubtreeSearch(t *testing.T) {
	v := newTestVault(t)
	nested := filepath.Join(v.NotesDir(), "Projects", "B.md")
	if err := v.WriteNote(nested, "nested"); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, created, err := v.ResolveWikiLink("B")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if created || path != nested {
		t.Fatalf("resolve = %s created=%v, want %s", path, created, nested)
	}
}

func TestResolveWikiLinkCreatesMissingNote(t *testing.T) {
	v := newTestVault(t)

	path, created, err := v.ResolveWikiLink("B")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !created {
		t.Fatal("expected a new note")
	}
	if path != filepath.Join(v.NotesDir(), "B.md") {
		t.Fatalf("new note at %s", path)
	}
	content, err := v.ReadNote(path)
	if err != nil {
		t.Fatalf("read new note: %v", err)
	}
	if content != "# B\n\n" {
		t.Fatalf("new note content = %q, want %q", content, "# B\n\n")
	}
}
