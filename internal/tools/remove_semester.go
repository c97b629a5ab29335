package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// RemoveSemesterTool handles the plan_remove_semester MCP tool.
type RemoveSemesterTool struct {
	store *store.Store
}

// NewRemoveSemesterTool creates a RemoveSemesterTool.
func NewRemoveSemesterTool(s *store.Store) *RemoveSemesterTool {
	return &RemoveSemesterTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveSemesterTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_remove_semester",
		mcp.WithDescription(
			"Remove a semester from the schedule. An academic semester that still has courses "+
				"is refused unless force is true. The plan-level credit target is recomputed from "+
				"the remaining academic semesters. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("term",
			mcp.Description("Semester to remove, e.g. 'Summer 2027' (required)"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Remove the semester even if it still has courses (default false)"),
		),
	)
}

// Handle processes the plan_remove_semester tool call.
func (t *RemoveSemesterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}
	term := stringArg(a, "term")
	if term == "" {
		return failResult(plan.Errf(plan.KindValidation, "term", "'term' is required")), nil
	}

	var message string
	next, err := t.store.Mutate(handle, func(p *plan.SchedulePlan) (*plan.SchedulePlan, string, error) {
		updated, msg, err := plan.RemoveSemester(p, term, boolArg(a, "force", false))
		if err != nil {
			return nil, "", err
		}
		message = msg
		return updated, "remove_semester " + plan.NormalizeTerm(term), nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
