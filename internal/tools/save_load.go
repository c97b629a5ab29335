package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/archive"
	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// SaveTool handles the plan_save MCP tool: persist a handle's current
// state under the owning user's email so it survives handle expiry.
type SaveTool struct {
	store   *store.Store
	archive *archive.Store
}

// NewSaveTool creates a SaveTool.
func NewSaveTool(s *store.Store, a *archive.Store) *SaveTool {
	return &SaveTool{store: s, archive: a}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_save",
		mcp.WithDescription(
			"Persist the schedule's current state under a user email. Saving again for the "+
				"same email replaces the previous save. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("email",
			mcp.Description("Owner's email address (required)"),
		),
	)
}

// Handle processes the plan_save tool call.
func (t *SaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}

	p, err := t.store.Get(handle)
	if err != nil {
		return failResult(err), nil
	}
	email := stringArg(a, "email")
	if err := t.archive.Save(email, p); err != nil {
		return failResult(err), nil
	}
	return okResult(fmt.Sprintf("Schedule saved for %s", email), nil, nil), nil
}

// LoadTool handles the plan_load MCP tool: bring a saved schedule back
// into the live store under a fresh handle.
type LoadTool struct {
	store   *store.Store
	archive *archive.Store
}

// NewLoadTool creates a LoadTool.
func NewLoadTool(s *store.Store, a *archive.Store) *LoadTool {
	return &LoadTool{store: s, archive: a}
}

// Definition returns the MCP tool definition for registration.
func (t *LoadTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_load",
		mcp.WithDescription(
			"Load the schedule saved for a user email into a new scheduleId. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("email",
			mcp.Description("Owner's email address (required)"),
		),
	)
}

// Handle processes the plan_load tool call.
func (t *LoadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	email := stringArg(a, "email")
	if email == "" {
		return failResult(plan.Errf(plan.KindValidation, "email", "'email' is required")), nil
	}

	saved, err := t.archive.Load(email)
	if err != nil {
		return failResult(err), nil
	}
	handle := t.store.Create(saved.Plan)

	return okResult(
		fmt.Sprintf("Loaded the schedule saved for %s (last updated %s)", saved.Email, saved.UpdatedAt),
		saved.Plan,
		map[string]any{"scheduleId": handle},
	), nil
}
