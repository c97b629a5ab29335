package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// SwapCoursesTool handles the plan_swap_courses MCP tool.
type SwapCoursesTool struct {
	store *store.Store
}

// NewSwapCoursesTool creates a SwapCoursesTool.
func NewSwapCoursesTool(s *store.Store) *SwapCoursesTool {
	return &SwapCoursesTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *SwapCoursesTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_swap_courses",
		mcp.WithDescription(
			"Exchange the positions of two courses. Within one semester the two slots are swapped; "+
				"across semesters each course lands in the other's place and both credit totals are "+
				"recomputed. Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("code1",
			mcp.Description("First course code (required)"),
		),
		mcp.WithString("code2",
			mcp.Description("Second course code (required)"),
		),
	)
}

// Handle processes the plan_swap_courses tool call.
func (t *SwapCoursesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}
	code1, code2 := stringArg(a, "code1"), stringArg(a, "code2")
	if code1 == "" || code2 == "" {
		return failResult(plan.Errf(plan.KindValidation, "code1", "'code1' and 'code2' are required")), nil
	}

	var message string
	next, err := t.store.Mutate(handle, func(p *plan.SchedulePlan) (*plan.SchedulePlan, string, error) {
		updated, msg, err := plan.SwapCourses(p, code1, code2)
		if err != nil {
			return nil, "", err
		}
		message = msg
		return updated, "swap_courses " + plan.NormalizeCode(code1) + "/" + plan.NormalizeCode(code2), nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
