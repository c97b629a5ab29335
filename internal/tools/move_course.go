package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// MoveCourseTool handles the plan_move_course MCP tool.
type MoveCourseTool struct {
	store *store.Store
}

// NewMoveCourseTool creates a MoveCourseTool.
func NewMoveCourseTool(s *store.Store) *MoveCourseTool {
	return &MoveCourseTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *MoveCourseTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_move_course",
		mcp.WithDescription(
			"Move a course to another academic semester. Both semesters' credit totals are "+
				"recomputed; the plan-wide academic credit sum is unchanged. Moving a course to the "+
				"semester it is already in succeeds without changes. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("code",
			mcp.Description("Course code to move (required)"),
		),
		mcp.WithString("toTerm",
			mcp.Description("Destination semester, e.g. 'Spring 2027' (required)"),
		),
	)
}

// Handle processes the plan_move_course tool call.
func (t *MoveCourseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		updated, msg, err := plan.MoveCourse(p, code, stringArg(a, "toTerm"))
		if err != nil {
			return nil, "", err
		}
		message = msg
		return updated, "move_course " + plan.NormalizeCode(code), nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
