package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// GetSemesterTool handles the plan_get_semester MCP tool.
type GetSemesterTool struct {
	store *store.Store
}

// NewGetSemesterTool creates a GetSemesterTool.
func NewGetSemesterTool(s *store.Store) *GetSemesterTool {
	return &GetSemesterTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *GetSemesterTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_get_semester",
		mcp.WithDescription(
			"Fetch a single semester record by term. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("term",
			mcp.Description("Semester to fetch, e.g. 'Fall 2025' (required)"),
		),
	)
}

// Handle processes the plan_get_semester tool call.
func (t *GetSemesterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}
	term := stringArg(a, "term")
	if term == "" {
		return failResult(plan.Errf(plan.KindValidation, "term", "'term' is required")), nil
	}

	p, err := t.store.Get(handle)
	if err != nil {
		return failResult(err), nil
	}
	sem, err := plan.GetSemester(p, term)
	if err != nil {
		return failResult(err), nil
	}

	return okResult(
		fmt.Sprintf("%s (%s)", sem.Term, sem.Type),
		nil,
		map[string]any{"semester": sem},
	), nil
}
