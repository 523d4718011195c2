package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectParams struct {
	InvocationID string `json:"invocation_id" jsonschema:"the invocation id from a previous tool result or cc_history"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.InvocationID == "" {
		return errorResult("invocation_id is required")
	}

	rec, err := h.store.Load(params.InvocationID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load invocation %s: %v", params.InvocationID, err))
	}

	return textResult(formatRecord(rec, true))
}

type historyParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of invocations to return; defaults to 10"`
}

func (h *handler) historyHandler(ctx context.Context, req *mcp.CallToolRequest, params historyParams) (*mcp.CallToolResult, any, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	records, err := h.store.Recent(limit)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to list invocations: %v", err))
	}
	if len(records) == 0 {
		return textResult("No invocations recorded yet.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d invocation(s), newest first:\n\n", len(records))
	for _, rec := range records {
		status := "ok"
		if !rec.OK() {
			status = fmt.Sprintf("exit %d", rec.ExitCode)
		}
		fmt.Fprintf(&b, "%s  %-7s %-6s %s\n", rec.StartedAt.Format("15:04:05"), rec.Op, status, rec.ID)
	}
	fmt.Fprintf(&b, "\nInspect one with cc_inspect(invocation_id=...).\n")

	return textResult(b.String())
}
