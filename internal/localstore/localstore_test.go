package localstore

import (
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTest(t)

	if v, err := s.Get("theme"); err != nil || v != "" {
		t.Fatalf("unset key: v=%q err=%v", v, err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("theme", "light"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get("theme"); v != "light" {
		t.Fatalf("theme = %q, want light", v)
	}
}

func TestSecrets(t *testing.T) {
	s := openTest(t)

	if err := s.SetSecret(SecretSyncToken, "ghp_abc"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Secret(SecretSyncToken); v != "ghp_abc" {
		t.Fatalf("secret = %q", v)
	}
	if err := s.DeleteSecret(SecretSyncToken); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Secret(SecretSyncToken); v != "" {
		t.Fatalf("deleted secret still present: %q", v)
	}
	// Deleting again must not error.
	if err := s.DeleteSecret(SecretSyncToken); err != nil {
		t.Fatal(err)
	}
}

func TestEncryptedRegistry(t *testing.T) {
	s := openTest(t)

	if ok, _ := s.IsMarked("Notes/secret.md"); ok {
		t.Fatal("fresh store marks nothing")
	}
	if err := s.MarkEncrypted("Notes/secret.md"); err != nil {
		t.Fatal(err)
	}
	// Marking twice is idempotent.
	if err := s.MarkEncrypted("Notes/secret.md"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.IsMarked("Notes/secret.md"); !ok {
		t.Fatal("mark lost")
	}
	if err := s.Unmark("Notes/secret.md"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.IsMarked("Notes/secret.md"); ok {
		t.Fatal("unmark did not remove the entry")
	}
}
