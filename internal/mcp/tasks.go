package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oychao1988/content-creator/internal/report"
	"github.com/oychao1988/content-creator/internal/workflow"
)

type createParams struct {
	Topic        string `json:"topic" jsonschema:"the subject of the content to generate"`
	Requirements string `json:"requirements,omitempty" jsonschema:"free-form requirements for the generated content"`
	Keywords     string `json:"keywords,omitempty" jsonschema:"comma-separated keywords to weave into the content"`
	MinWords     int    `json:"min_words,omitempty" jsonschema:"minimum word count; defaults from config"`
	MaxWords     int    `json:"max_words,omitempty" jsonschema:"maximum word count; defaults from config"`
	Mode         string `json:"mode,omitempty" jsonschema:"sync blocks until completion, async returns immediately; defaults from config"`
}

func (h *handler) createHandler(ctx context.Context, req *mcp.CallToolRequest, params createParams) (*mcp.CallToolResult, any, error) {
	rec, err := h.engine.Create(ctx, workflow.TaskSpec{
		Topic:        params.Topic,
		Requirements: params.Requirements,
		Keywords:     params.Keywords,
		MinWords:     params.MinWords,
		MaxWords:     params.MaxWords,
		Mode:         params.Mode,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("create failed: %v", err))
	}
	return h.recordResult(rec)
}

type taskParams struct {
	ID string `json:"id" jsonschema:"the task id printed by a previous create or list call"`
}

func (h *handler) statusHandler(ctx context.Context, req *mcp.CallToolRequest, params taskParams) (*mcp.CallToolResult, any, error) {
	return h.taskOp(ctx, params.ID, h.engine.Status)
}

func (h *handler) resultHandler(ctx context.Context, req *mcp.CallToolRequest, params taskParams) (*mcp.CallToolResult, any, error) {
	return h.taskOp(ctx, params.ID, h.engine.Result)
}

func (h *handler) retryHandler(ctx context.Context, req *mcp.CallToolRequest, params taskParams) (*mcp.CallToolResult, any, error) {
	return h.taskOp(ctx, params.ID, h.engine.Retry)
}

func (h *handler) cancelHandler(ctx context.Context, req *mcp.CallToolRequest, params taskParams) (*mcp.CallToolResult, any, error) {
	return h.taskOp(ctx, params.ID, h.engine.Cancel)
}

type listParams struct{}

func (h *handler) listHandler(ctx context.Context, req *mcp.CallToolRequest, params listParams) (*mcp.CallToolResult, any, error) {
	rec, err := h.engine.List(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("list failed: %v", err))
	}
	return h.recordResult(rec)
}

func (h *handler) taskOp(ctx context.Context, id string, op func(context.Context, string) (*report.Record, error)) (*mcp.CallToolResult, any, error) {
	rec, err := op(ctx, id)
	if err != nil {
		return errorResult(err.Error())
	}
	return h.recordResult(rec)
}

// recordResult saves the invocation for cc_inspect and formats it for
// the model. A non-zero exit becomes an error result carrying the same
// text, so the model sees the failure without losing the output.
func (h *handler) recordResult(rec *report.Record) (*mcp.CallToolResult, any, error) {
	_ = h.store.Save(rec)

	text := formatRecord(rec, true)
	if !rec.OK() {
		return errorResult(text)
	}
	return textResult(text)
}

// formatRecord renders one invocation. Output is opaque text from the
// external tool and is passed through untouched.
func formatRecord(rec *report.Record, full bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invocation: %s (%s)\n", rec.ID, rec.Op)
	fmt.Fprintf(&b, "Command: %s\n", rec.Command)
	fmt.Fprintf(&b, "Exit code: %d\n", rec.ExitCode)
	if rec.Truncated {
		fmt.Fprintln(&b, "Output was truncated at the configured cap.")
	}

	if !full {
		return b.String()
	}

	if rec.Stdout != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(rec.Stdout, "\n"))
	}
	if rec.Stderr != "" {
		fmt.Fprintf(&b, "\nstderr:\n%s\n", strings.TrimRight(rec.Stderr, "\n"))
	}
	return b.String()
}
