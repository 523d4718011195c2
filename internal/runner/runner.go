// Package runner executes a single external command line and normalizes
// its outcome into a (exit code, stdout, stderr) result, with workspace
// bounds, timeouts, and output size limits.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	shellwords "github.com/mattn/go-shellwords"
)

// StartFailure is the sentinel exit code reported when a command could
// not be started at all: empty command line, unbalanced quoting, or a
// binary that cannot be found. The failure description is carried on
// Stderr, and Stdout is empty.
const StartFailure = -1

// Runner executes command lines safely within a workspace boundary.
type Runner struct {
	Workspace string
	Timeout   time.Duration
	MaxOutput int // bytes
}

// Run tokenizes commandLine with shell word-splitting rules (quoted
// substrings become single tokens) and executes the resulting argv as a
// child process, with no shell interpretation of metacharacters. The
// first token is the binary name (resolved via PATH), the rest are
// arguments. cwd is resolved relative to the workspace root and must
// remain within it.
//
// A non-zero exit code from the child is not an error: the caller
// distinguishes success from failure by checking Result.ExitCode.
// Failures to start the process at all are folded into the same shape
// with ExitCode == StartFailure.
func (r *Runner) Run(ctx context.Context, commandLine, cwd string) (*Result, error) {
	started := time.Now()
	id := uuid.New().String()

	argv, err := shellwords.Parse(commandLine)
	if err != nil {
		return startFailure(id, started, fmt.Errorf("tokenizing command: %w", err)), nil
	}
	if len(argv) == 0 {
		return startFailure(id, started, errors.New("empty command line")), nil
	}

	// Resolve and validate cwd.
	dir, err := r.resolveDir(cwd)
	if err != nil {
		return nil, err
	}

	timeout := r.Timeout
	maxOutput := r.MaxOutput

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	runErr := cmd.Run()

	truncated := stdout.Len() >= maxOutput || stderr.Len() >= maxOutput

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Binary not found or other exec error: the process never ran.
			return startFailure(id, started, fmt.Errorf("executing %s: %w", argv[0], runErr)), nil
		}
	}

	return &Result{
		ID:        id,
		ExitCode:  exitCode,
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Truncated: truncated,
		StartedAt: started,
		Duration:  time.Since(started),
	}, nil
}

func startFailure(id string, started time.Time, err error) *Result {
	return &Result{
		ID:        id,
		ExitCode:  StartFailure,
		Stderr:    []byte(err.Error()),
		StartedAt: started,
		Duration:  time.Since(started),
	}
}

// resolveDir resolves cwd relative to the workspace and validates it
// is within the workspace boundary.
func (r *Runner) resolveDir(cwd string) (string, error) {
	if cwd == "" {
		return r.Workspace, nil
	}

	var dir string
	if filepath.IsAbs(cwd) {
		dir = filepath.Clean(cwd)
	} else {
		dir = filepath.Clean(filepath.Join(r.Workspace, cwd))
	}

	// Ensure dir is within workspace.
	rel, err := filepath.Rel(r.Workspace, dir)
	if err != nil {
		return "", fmt.Errorf("resolving cwd: %w", err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("cwd %q is outside workspace %q", cwd, r.Workspace)
	}
	return dir, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
