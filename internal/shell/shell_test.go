package shell

import (
	"context"
	"strings"
	"testing"
)

func TestExecuteCapturesStdout(t *testing.T) {
	e := New(t.TempDir())
	res := e.Execute(context.Background(), "echo hello")
	if !res.OK {
		t.Fatalf("execute failed: %s", res.Output)
	}
	if strings.TrimSpace(res.Output) != "hello" {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestExecuteRunsInVaultDir(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)
	res := e.Execute(context.Background(), "pwd")
	if !res.OK {
		t.Fatalf("execute failed: %s", res.Output)
	}
	if strings.TrimSpace(res.Output) != dir {
		t.Fatalf("cwd = %q, want %q", res.Output, dir)
	}
}

func TestExecuteFailureCarriesStderr(t *testing.T) {
	e := New(t.TempDir())
	res := e.Execute(context.Background(), "echo boom >&2; exit 3")
	if res.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Output, "boom") {
		t.Fatalf("stderr lost: %q", res.Output)
	}
}
