package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/store"
)

// GetTool handles the plan_get MCP tool: a plain read of current state.
type GetTool struct {
	store *store.Store
}

// NewGetTool creates a GetTool.
func NewGetTool(s *store.Store) *GetTool {
	return &GetTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_get",
		mcp.WithDescription(
			"Fetch the current canonical state of a schedule by its scheduleId. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
	)
}

// Handle processes the plan_get tool call.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}

	p, err := t.store.Get(handle)
	if err != nil {
		return failResult(err), nil
	}

	data := map[string]any{"scheduleId": handle}
	if action, err := t.store.LastAction(handle); err == nil {
		data["lastAction"] = action.Label
	}
	return okResult("Current schedule state", p, data), nil
}
