// Package mcp provides the Content Creator MCP server, registering the
// task tools and publishing model instructions.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	contentcreator "github.com/oychao1988/content-creator"
	"github.com/oychao1988/content-creator/internal/report"
	"github.com/oychao1988/content-creator/internal/workflow"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *workflow.Engine
	store  report.Store
}

// NewServer creates an MCP server with all Content Creator tools registered.
func NewServer(eng *workflow.Engine, store report.Store) *mcp.Server {
	h := &handler{engine: eng, store: store}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "content-creator", Version: contentcreator.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cc_create",
		Description: `Create a content-generation task.

In sync mode the call blocks until the content is generated and the output
contains the result. In async mode the call returns immediately; use
cc_status with the task id printed in the output to track progress.`,
	}, h.createHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "cc_status",
		Description: "Query the state of a task by its id.",
	}, h.statusHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "cc_list",
		Description: "List all tasks known to the Content Creator CLI.",
	}, h.listHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "cc_result",
		Description: "Fetch the generated content of a completed task.",
	}, h.resultHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "cc_retry",
		Description: "Re-queue a failed task.",
	}, h.retryHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "cc_cancel",
		Description: "Cancel a pending or running task.",
	}, h.cancelHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cc_inspect",
		Description: `Drill into a past CLI invocation.

Use the invocation id from a previous tool result (or cc_history) to see
the exact command line, exit code, and full captured output.`,
	}, h.inspectHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "cc_history",
		Description: "List recent CLI invocations performed through this server, newest first.",
	}, h.historyHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
