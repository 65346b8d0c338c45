package gitsync

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes one git invocation in dir. The production runner shells
// out to the git binary; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.String(), errb.String(), err
}

// Config is the persisted part of the sync setup. The token is deliberately
// absent: it never touches the vault, it lives in the local secret store.
type Config struct {
	Username   string `json:"username"`
	Repository string `json:"repository"`
}

// Status summarizes the working tree.
type Status struct {
	Clean      bool
	Modified   int
	Branch     string
	HasCommits bool
}

// Result carries the outcome of a sync operation. Failures are surfaced as
// the underlying tool's message; nothing is retried.
type Result struct {
	OK      bool
	Message string
}

// Client sequences git operations over a vault directory. It is a thin
// wrapper around the external tool: no conflict handling, no recovery.
type Client struct {
	dir    string
	runner Runner
}

func New(dir string) *Client { return &Client{dir: dir, runner: execRunner{}} }

// NewWithRunner is for tests.
func NewWithRunner(dir string, r Runner) *Client { return &Client{dir: dir, runner: r} }

// RemoteURL builds the authenticated HTTPS remote for a user's repository.
func RemoteURL(user, token, repo string) string {
	return fmt.Sprintf("https://%s:%s@github.com/%s/%s.git", user, token, user, repo)
}

// Init creates the repository if it does not exist yet.
func (c *Client) Init(ctx context.Context) Result {
	if _, stderr, err := c.runner.Run(ctx, c.dir, "init"); err != nil {
		return fail(stderr, err)
	}
	return Result{OK: true}
}

// Status reports whether the tree is clean, how many paths differ, the
// current branch, and whether any commit exists yet.
func (c *Client) Status(ctx context.Context) (Status, error) {
	out, stderr, err := c.runner.Run(ctx, c.dir, "status", "--porcelain", "--branch")
	if err != nil {
		return Status{}, fmt.Errorf("git status: %s", errText(stderr, err))
	}

	var st Status
	lines := splitLines(out)
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			st.Branch = strings.SplitN(strings.TrimPrefix(line, "## "), "...", 2)[0]
			continue
		}
		st.Modified++
	}
	st.Clean = st.Modified == 0

	// HEAD resolves only once something has been committed.
	if _, _, err := c.runner.Run(ctx, c.dir, "rev-parse", "--verify", "HEAD"); err == nil {
		st.HasCommits = true
	}
	return st, nil
}

// Commit stages everything and commits. An empty message gets a generated
// timestamped one. Committing a clean tree reports the tool's message back
// rather than failing the caller.
func (c *Client) Commit(ctx context.Context, message string) Result {
	if _, stderr, err := c.runner.Run(ctx, c.dir, "add", "-A"); err != nil {
		return fail(stderr, err)
	}
	if message == "" {
		message = "Update: " + time.Now().Format("2006-01-02 15:04")
	}
	if out, stderr, err := c.runner.Run(ctx, c.dir, "commit", "-m", message); err != nil {
		return fail(firstNonEmpty(stderr, out), err)
	}
	return Result{OK: true, Message: message}
}

// Push points origin at the authenticated remote URL and pushes branch.
func (c *Client) Push(ctx context.Context, remote, branch, user, token string) Result {
	if r := c.setRemote(ctx, RemoteURL(user, token, remote)); !r.OK {
		return r
	}
	if _, stderr, err := c.runner.Run(ctx, c.dir, "push", "origin", branch); err != nil {
		return fail(stderr, err)
	}
	return Result{OK: true}
}

// Pull refreshes origin's URL from cfg and pulls main.
func (c *Client) Pull(ctx context.Context, cfg Config, token string) Result {
	if cfg.Repository != "" {
		if r := c.setRemote(ctx, RemoteURL(cfg.Username, token, cfg.Repository)); !r.OK {
			return r
		}
	}
	if out, stderr, err := c.runner.Run(ctx, c.dir, "pull", "origin", "main"); err != nil {
		return fail(firstNonEmpty(stderr, out), err)
	}
	return Result{OK: true, Message: "Vault updated from remote"}
}

func (c *Client) setRemote(ctx context.Context, url string) Result {
	if _, _, err := c.runner.Run(ctx, c.dir, "remote", "get-url", "origin"); err != nil {
		if _, stderr, err := c.runner.Run(ctx, c.dir, "remote", "add", "origin", url); err != nil {
			return fail(stderr, err)
		}
		return Result{OK: true}
	}
	if _, stderr, err := c.runner.Run(ctx, c.dir, "remote", "set-url", "origin", url); err != nil {
		return fail(stderr, err)
	}
	return Result{OK: true}
}

func fail(stderr string, err error) Result {
	return Result{OK: false, Message: errText(stderr, err)}
}

func errText(stderr string, err error) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	return err.Error()
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
