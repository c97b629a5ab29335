package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// FindCoursesTool handles the plan_find_courses MCP tool.
type FindCoursesTool struct {
	store *store.Store
}

// NewFindCoursesTool creates a FindCoursesTool.
func NewFindCoursesTool(s *store.Store) *FindCoursesTool {
	return &FindCoursesTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *FindCoursesTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_find_courses",
		mcp.WithDescription(
			"Search course codes and names across all academic semesters, case-insensitive "+
				"substring match. An empty match list is a normal result, not an error. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("searchTerm",
			mcp.Description("Substring to look for in course codes or names"),
		),
	)
}

// Handle processes the plan_find_courses tool call.
func (t *FindCoursesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}

	p, err := t.store.Get(handle)
	if err != nil {
		return failResult(err), nil
	}
	matches := plan.FindCourses(p, stringArg(a, "searchTerm"))

	msg := fmt.Sprintf("Found %d matching course(s)", len(matches))
	if len(matches) == 0 {
		msg = "No matching courses"
	}
	return okResult(msg, nil, map[string]any{"matches": matches}), nil
}
