package workflow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oychao1988/content-creator/internal/report"
)

// The example drivers mirror the original workflow demo: each one
// formats a command, runs it, and prints a success or failure banner
// with the raw output. Nothing here parses the external tool's output,
// and failures never propagate — the demo always completes.

const bannerRule = "=================================================="

// DemoOptions selects which example drivers RunDemo executes beyond the
// default pair (create-sync and list).
type DemoOptions struct {
	All    bool   // also run create-async and the retry placeholder
	TaskID string // when set, also run the status example against this id
}

// RunDemo runs the example workflow against a live project and writes
// the demo transcript to w. The returned records are the invocations
// performed, in order; callers may persist them for later inspection.
func (e *Engine) RunDemo(ctx context.Context, w io.Writer, opts DemoOptions) []*report.Record {
	fmt.Fprintln(w, "Content Creator workflow examples")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	var records []*report.Record
	add := func(r *report.Record) {
		if r != nil {
			records = append(records, r)
		}
	}

	add(e.ExampleCreateSync(ctx, w))

	if opts.All {
		add(e.ExampleCreateAsync(ctx, w))
	}
	if opts.TaskID != "" {
		add(e.ExampleStatus(ctx, w, opts.TaskID))
	}

	add(e.ExampleList(ctx, w))

	if opts.All {
		add(e.ExampleRetry(ctx, w))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "All examples finished.")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other available commands:")
	fmt.Fprintf(w, "  - fetch a task result:  %s\n", e.commandLine("result", "--id", "<task-id>"))
	fmt.Fprintf(w, "  - retry a failed task:  %s\n", e.commandLine("retry", "--id", "<task-id>"))
	fmt.Fprintf(w, "  - cancel a task:        %s\n", e.commandLine("cancel", "--id", "<task-id>"))

	return records
}

// ExampleCreateSync creates a task in sync mode: the command blocks
// until the content has been generated.
func (e *Engine) ExampleCreateSync(ctx context.Context, w io.Writer) *report.Record {
	fmt.Fprintln(w, "\n=== Example 1: create a synchronous task ===")

	spec := TaskSpec{
		Topic:        "AI 技术的发展趋势",
		Requirements: "写一篇关于 AI 技术发展趋势的文章，重点讨论大语言模型",
		Keywords:     "AI,人工智能,技术发展",
		MinWords:     500,
		MaxWords:     1000,
		Mode:         "sync",
	}
	return e.runExample(w, "Task created.", func() (*report.Record, error) {
		return e.Create(ctx, spec)
	})
}

// ExampleCreateAsync creates a task in async mode: the command returns
// immediately and the task runs in the background.
func (e *Engine) ExampleCreateAsync(ctx context.Context, w io.Writer) *report.Record {
	fmt.Fprintln(w, "\n=== Example 2: create an asynchronous task ===")

	spec := TaskSpec{
		Topic:        "Web 开发的最佳实践",
		Requirements: "介绍现代 Web 开发的最佳实践，包括性能优化和安全考虑",
		Keywords:     "Web,前端,性能优化",
		MinWords:     800,
		MaxWords:     1200,
		Mode:         "async",
	}
	return e.runExample(w, "Task created.", func() (*report.Record, error) {
		return e.Create(ctx, spec)
	})
}

// ExampleStatus queries the state of one task.
func (e *Engine) ExampleStatus(ctx context.Context, w io.Writer, taskID string) *report.Record {
	fmt.Fprintln(w, "\n=== Example 3: check task status ===")

	return e.runExample(w, "Status query succeeded.", func() (*report.Record, error) {
		return e.Status(ctx, taskID)
	})
}

// ExampleList lists all tasks.
func (e *Engine) ExampleList(ctx context.Context, w io.Writer) *report.Record {
	fmt.Fprintln(w, "\n=== Example 4: list all tasks ===")

	return e.runExample(w, "Task list retrieved.", func() (*report.Record, error) {
		return e.List(ctx)
	})
}

// ExampleRetry demonstrates the retry flow. It deliberately does not
// issue a retry command: it re-lists the tasks and tells the operator
// how to retry one by hand, matching the original demo. Inventing
// failed-task selection logic here would misrepresent the external
// tool's contract.
func (e *Engine) ExampleRetry(ctx context.Context, w io.Writer) *report.Record {
	fmt.Fprintln(w, "\n=== Example 5: retry a failed task ===")

	rec := e.runExample(w, "Task list retrieved.", func() (*report.Record, error) {
		return e.List(ctx)
	})

	if rec != nil && rec.OK() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Note: pick the failed task id from the list above, then run:")
		fmt.Fprintf(w, "  %s\n", e.commandLine("retry", "--id", "<task-id>"))
	} else {
		fmt.Fprintln(w, "No tasks found.")
	}
	return rec
}

// runExample executes one operation and prints its banner. op errors
// (invalid input, runner contract violations) are reported the same way
// as command failures so the demo never aborts.
func (e *Engine) runExample(w io.Writer, successMsg string, op func() (*report.Record, error)) *report.Record {
	rec, err := op()
	if err != nil {
		fmt.Fprintf(w, "Command failed: %v\n", err)
		return nil
	}

	if rec.OK() {
		fmt.Fprintln(w, successMsg)
		printResultBlock(w, rec.Stdout)
		return rec
	}

	fmt.Fprintf(w, "Command failed (exit code: %d)\n", rec.ExitCode)
	if rec.Stdout != "" {
		fmt.Fprintf(w, "stdout: %s\n", rec.Stdout)
	}
	if rec.Stderr != "" {
		fmt.Fprintf(w, "stderr: %s\n", rec.Stderr)
	}
	return rec
}

// printResultBlock frames raw output for human inspection.
func printResultBlock(w io.Writer, output string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, "Task result")
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, strings.TrimRight(output, "\n"))
	fmt.Fprintln(w, bannerRule)
}
