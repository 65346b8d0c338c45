package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Result is the outcome of one command execution. Failures carry the
// command's combined error text instead of an error value so callers can
// show them inline without branching.
type Result struct {
	OK     bool
	Output string
}

// Executor runs shell commands with the vault root as working directory.
// It backs both the runnable markdown code blocks and routine scripts.
type Executor struct {
	Dir string
}

func New(dir string) *Executor { return &Executor{Dir: dir} }

// Execute runs command through sh -c and captures stdout. On failure the
// result carries stderr (or the exec error) instead.
func (e *Executor) Execute(ctx context.Context, command string) Result {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = e.Dir
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errb.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{OK: false, Output: msg}
	}
	return Result{OK: true, Output: out.String()}
}
