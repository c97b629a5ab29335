package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// RemoveCourseTool handles the plan_remove_course MCP tool.
type RemoveCourseTool struct {
	store *store.Store
}

// NewRemoveCourseTool creates a RemoveCourseTool.
func NewRemoveCourseTool(s *store.Store) *RemoveCourseTool {
	return &RemoveCourseTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveCourseTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_remove_course",
		mcp.WithDescription(
			"Remove a course from the schedule by its code, wherever it sits. "+
				"The affected semester's credit total is recomputed. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("code",
			mcp.Description("Course code to remove (required)"),
		),
	)
}

// Handle processes the plan_remove_course tool call.
func (t *RemoveCourseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}
	code := stringArg(a, "code")
	if code == "" {
		return failResult(plan.Errf(plan.KindValidation, "code", "'code' is required")), nil
	}

	var message string
	next, err := t.store.Mutate(handle, func(p *plan.SchedulePlan) (*plan.SchedulePlan, string, error) {
		updated, msg, err := plan.RemoveCourse(p, code)
		if err != nil {
			return nil, "", err
		}
		message = msg
		return updated, "remove_course " + plan.NormalizeCode(code), nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
