package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// GenerateTool handles the plan_generate MCP tool.
// It is the entry point of the pipeline: whatever the agent produced —
// markdown prose, stringified JSON, JSON buried in explanation — is
// normalized into a canonical schedule and registered under a new handle.
type GenerateTool struct {
	store *store.Store
}

// NewGenerateTool creates a GenerateTool with the given schedule store.
func NewGenerateTool(s *store.Store) *GenerateTool {
	return &GenerateTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_generate",
		mcp.WithDescription(
			"Register a new degree schedule from raw agent output. "+
				"Accepts either 'schedule' (a schedule object) or 'raw' (free text that may contain "+
				"markdown prose or embedded JSON). The input is normalized — semester types reconciled, "+
				"duplicate courses dropped, credit totals recomputed — and stored under a new scheduleId. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("raw",
			mcp.Description("Raw agent output: markdown plan, stringified JSON, or JSON wrapped in prose"),
		),
		mcp.WithObject("schedule",
			mcp.Description("A schedule object with school/major/semesters fields, if already structured"),
		),
	)
}

// Handle processes the plan_generate tool call.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)

	var p *plan.SchedulePlan
	switch {
	case a["schedule"] != nil:
		obj, ok := a["schedule"].(map[string]any)
		if !ok {
			return failResult(plan.Errf(plan.KindValidation, "schedule", "'schedule' must be an object")), nil
		}
		p = plan.Normalize(obj)
	case stringArg(a, "raw") != "":
		p = plan.NormalizeText(stringArg(a, "raw"))
	default:
		return failResult(plan.Errf(plan.KindValidation, "raw", "provide either 'raw' text or a 'schedule' object")), nil
	}

	handle := t.store.Create(p)
	msg := fmt.Sprintf("Schedule registered with %d semester(s)", len(p.Semesters))
	return okResult(msg, p, map[string]any{"scheduleId": handle}), nil
}
