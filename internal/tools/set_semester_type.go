package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// SetSemesterTypeTool handles the plan_set_semester_type MCP tool.
type SetSemesterTypeTool struct {
	store *store.Store
}

// NewSetSemesterTypeTool creates a SetSemesterTypeTool.
func NewSetSemesterTypeTool(s *store.Store) *SetSemesterTypeTool {
	return &SetSemesterTypeTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *SetSemesterTypeTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_set_semester_type",
		mcp.WithDescription(
			"Convert a semester between academic and co-op. Converting to co-op discards any "+
				"courses (noted in the response); converting to academic resets to an empty course "+
				"list. Asking for the type it already has succeeds without changes. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("term",
			mcp.Description("Semester to convert, e.g. 'Summer 2026' (required)"),
		),
		mcp.WithString("newType",
			mcp.Description("Target type (required)"),
			mcp.Enum("academic", "coop"),
		),
		mcp.WithNumber("coopNumber",
			mcp.Description("Placement index when converting to co-op; defaults to the next in sequence"),
		),
	)
}

// Handle processes the plan_set_semester_type tool call.
func (t *SetSemesterTypeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}
	term := stringArg(a, "term")
	if term == "" {
		return failResult(plan.Errf(plan.KindValidation, "term", "'term' is required")), nil
	}
	// Accept "co-op" and mixed case from sloppy callers.
	newType := plan.SemesterType(strings.ReplaceAll(strings.ToLower(stringArg(a, "newType")), "-", ""))

	var message string
	next, err := t.store.Mutate(handle, func(p *plan.SchedulePlan) (*plan.SchedulePlan, string, error) {
		updated, msg, err := plan.SetSemesterType(p, term, newType, intArg(a, "coopNumber", 0))
		if err != nil {
			return nil, "", err
		}
		message = msg
		return updated, "set_semester_type " + plan.NormalizeTerm(term), nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
