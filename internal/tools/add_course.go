package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// AddCourseTool handles the plan_add_course MCP tool.
type AddCourseTool struct {
	store *store.Store
}

// NewAddCourseTool creates an AddCourseTool.
func NewAddCourseTool(s *store.Store) *AddCourseTool {
	return &AddCourseTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *AddCourseTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_add_course",
		mcp.WithDescription(
			"Add a course to an academic semester. Fails if the term is a co-op semester, "+
				"the course code already exists anywhere in the schedule, or credits are outside 1-6. "+
				"The semester's credit total is recomputed. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("toTerm",
			mcp.Description("Target semester, e.g. 'Fall 2026' (required)"),
		),
		mcp.WithString("code",
			mcp.Description("Course code, e.g. 'CS 3500'. Use ELEC for an elective placeholder (required)"),
		),
		mcp.WithString("name",
			mcp.Description("Course name"),
		),
		mcp.WithNumber("credits",
			mcp.Description("Credit count, 1-6 (required)"),
		),
		mcp.WithArray("options",
			mcp.Description("Alternative courses that could fill this slot"),
		),
	)
}

// Handle processes the plan_add_course tool call.
func (t *AddCourseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}

	var message string
	next, err := t.store.Mutate(handle, func(p *plan.SchedulePlan) (*plan.SchedulePlan, string, error) {
		updated, msg, err := plan.AddCourse(p,
			stringArg(a, "toTerm"),
			stringArg(a, "code"),
			stringArg(a, "name"),
			intArg(a, "credits", 0),
			stringSliceArg(a, "options"),
		)
		if err != nil {
			return nil, "", err
		}
		message = msg
		return updated, "add_course " + plan.NormalizeCode(stringArg(a, "code")), nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
