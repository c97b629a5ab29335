package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// ApplyEditTool handles the plan_apply_edit MCP tool.
//
// This is the edit-flow fallback: an external agent was asked to revise a
// schedule and sent back raw text. If a schedule object can be recovered
// from that text it replaces the stored state (normalized); if not, the
// original schedule is kept with an appended warning — a failed edit must
// never lose the plan the student already had.
type ApplyEditTool struct {
	store *store.Store
}

// NewApplyEditTool creates an ApplyEditTool.
func NewApplyEditTool(s *store.Store) *ApplyEditTool {
	return &ApplyEditTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ApplyEditTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_apply_edit",
		mcp.WithDescription(
			"Apply an agent's edit response to a stored schedule. The response text is searched "+
				"for an embedded schedule object (bare JSON, escaped JSON, or JSON inside prose); on "+
				"success the recovered schedule is normalized and replaces the stored state. If no "+
				"schedule can be recovered the original is kept with a warning appended. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
		mcp.WithString("response",
			mcp.Description("Raw agent response text (required)"),
		),
	)
}

// Handle processes the plan_apply_edit tool call.
func (t *ApplyEditTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}
	response := stringArg(a, "response")
	if response == "" {
		return failResult(plan.Errf(plan.KindValidation, "response", "'response' is required")), nil
	}

	var message string
	next, err := t.store.Mutate(handle, func(p *plan.SchedulePlan) (*plan.SchedulePlan, string, error) {
		obj, ok := plan.ExtractScheduleJSON(response)
		if !ok {
			// Keep the existing plan; surface the failure on it.
			p.AddWarning("An edit response could not be parsed; the schedule was left unchanged")
			message = "No schedule found in the edit response — kept the existing schedule"
			return p, "apply_edit (unparseable, kept original)", nil
		}
		updated := plan.Normalize(obj)
		message = fmt.Sprintf("Edit applied — schedule now has %d semester(s)", len(updated.Semesters))
		return updated, "apply_edit", nil
	})
	if err != nil {
		return failResult(err), nil
	}
	return okResult(message, next, nil), nil
}
