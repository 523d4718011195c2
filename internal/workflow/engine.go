// Package workflow builds the external Content Creator CLI command
// lines, executes them through the command runner, and drives the
// example workflow. It is consumed by both the MCP server and the CLI
// commands.
package workflow

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/oychao1988/content-creator/internal/config"
	"github.com/oychao1988/content-creator/internal/report"
	"github.com/oychao1988/content-creator/internal/runner"
)

// CommandRunner executes one command line within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, commandLine, cwd string) (*runner.Result, error)
}

// Engine holds shared dependencies for all task operations.
type Engine struct {
	Config *config.Config
	Runner CommandRunner
	Root   string      // project root — commands run from here
	Log    *log.Logger // optional; logs each command line before execution
}

// TaskSpec describes a content-generation task to create.
type TaskSpec struct {
	Topic        string
	Requirements string
	Keywords     string
	MinWords     int
	MaxWords     int
	Mode         string // sync or async
}

// Validate checks the task parameters after defaults have been applied.
func (s *TaskSpec) Validate() error {
	if s.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if s.Mode != "sync" && s.Mode != "async" {
		return fmt.Errorf("mode must be sync or async, got %q", s.Mode)
	}
	if s.MinWords <= 0 || s.MaxWords <= 0 {
		return fmt.Errorf("word counts must be positive, got min=%d max=%d", s.MinWords, s.MaxWords)
	}
	if s.MinWords > s.MaxWords {
		return fmt.Errorf("min-words %d exceeds max-words %d", s.MinWords, s.MaxWords)
	}
	return nil
}

// Create creates a content-generation task. In sync mode the external
// CLI blocks until the task completes; in async mode it returns
// immediately and the task is tracked with Status.
func (e *Engine) Create(ctx context.Context, spec TaskSpec) (*report.Record, error) {
	spec = e.applyDefaults(spec)
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cmd := e.commandLine("create",
		"--topic", quoteArg(spec.Topic),
		"--requirements", quoteArg(spec.Requirements),
		"--keywords", quoteArg(spec.Keywords),
		"--min-words", strconv.Itoa(spec.MinWords),
		"--max-words", strconv.Itoa(spec.MaxWords),
		"--mode", spec.Mode,
	)
	return e.invoke(ctx, report.OpCreate, "", cmd)
}

// Status queries the state of a task.
func (e *Engine) Status(ctx context.Context, taskID string) (*report.Record, error) {
	return e.taskOp(ctx, report.OpStatus, taskID)
}

// List lists all tasks known to the external CLI.
func (e *Engine) List(ctx context.Context) (*report.Record, error) {
	return e.invoke(ctx, report.OpList, "", e.commandLine("list"))
}

// Result fetches the generated content of a completed task.
func (e *Engine) Result(ctx context.Context, taskID string) (*report.Record, error) {
	return e.taskOp(ctx, report.OpResult, taskID)
}

// Retry re-queues a failed task.
func (e *Engine) Retry(ctx context.Context, taskID string) (*report.Record, error) {
	return e.taskOp(ctx, report.OpRetry, taskID)
}

// Cancel cancels a pending or running task.
func (e *Engine) Cancel(ctx context.Context, taskID string) (*report.Record, error) {
	return e.taskOp(ctx, report.OpCancel, taskID)
}

func (e *Engine) taskOp(ctx context.Context, op report.Op, taskID string) (*report.Record, error) {
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}
	cmd := e.commandLine(string(op), "--id", taskID)
	return e.invoke(ctx, op, taskID, cmd)
}

// invoke runs one command line from the project root and folds the
// runner result into an invocation record. The external tool's output
// is carried as opaque text; the exit code is the only status signal.
func (e *Engine) invoke(ctx context.Context, op report.Op, taskID, cmd string) (*report.Record, error) {
	if e.Log != nil {
		e.Log.Printf("running: %s", cmd)
	}
	res, err := e.Runner.Run(ctx, cmd, "")
	if err != nil {
		return nil, err
	}
	return &report.Record{
		ID:        res.ID,
		Op:        op,
		TaskID:    taskID,
		Command:   cmd,
		ExitCode:  res.ExitCode,
		Stdout:    string(res.Stdout),
		Stderr:    string(res.Stderr),
		Truncated: res.Truncated,
		StartedAt: res.StartedAt,
		Duration:  res.Duration,
	}, nil
}

func (e *Engine) applyDefaults(spec TaskSpec) TaskSpec {
	if spec.MinWords == 0 {
		spec.MinWords = e.Config.MinWords()
	}
	if spec.MaxWords == 0 {
		spec.MaxWords = e.Config.MaxWords()
	}
	if spec.Mode == "" {
		spec.Mode = e.Config.Mode()
	}
	return spec
}

// validateTaskID rejects ids that would not survive word-splitting as a
// single bare token. Task ids are opaque strings minted by the external
// CLI, so anything beyond printable non-space characters is suspect.
func validateTaskID(id string) error {
	if id == "" {
		return fmt.Errorf("task id is required")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || r == '"' || r == '\'' || r == '\\' {
			return fmt.Errorf("invalid task id %q", id)
		}
	}
	return nil
}

// commandLine assembles the full external CLI invocation for op.
// With a script prefix the op maps to an npm script (e.g. cli:create)
// and flags are separated by " -- " so npm forwards them through to the
// script; without one the op is a bare subcommand of the configured
// command.
func (e *Engine) commandLine(op string, flags ...string) string {
	var b strings.Builder
	b.WriteString(e.Config.CLICommand())
	b.WriteByte(' ')
	if prefix := e.Config.ScriptPrefix(); prefix != "" {
		b.WriteString(prefix)
		b.WriteByte(':')
	}
	b.WriteString(op)

	if len(flags) > 0 {
		b.WriteString(" --")
		for _, f := range flags {
			b.WriteByte(' ')
			b.WriteString(f)
		}
	}
	return b.String()
}

// quoteArg wraps v in double quotes, escaping backslashes and embedded
// quotes, so that word-splitting the command line yields v back as
// exactly one token. Shell metacharacters inside v stay literal because
// the runner never invokes a shell.
func quoteArg(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
