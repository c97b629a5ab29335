package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
	"github.com/nmoreno/semplan/internal/store"
)

// CreditSummaryTool handles the plan_credit_summary MCP tool: a derived
// read over current state, no mutation.
type CreditSummaryTool struct {
	store *store.Store
}

// NewCreditSummaryTool creates a CreditSummaryTool.
func NewCreditSummaryTool(s *store.Store) *CreditSummaryTool {
	return &CreditSummaryTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *CreditSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_credit_summary",
		mcp.WithDescription(
			"Compute current credits vs. the credential's target, the lightest and heaviest "+
				"academic semesters, and whether the plan is over, at, or under target. "+
				"Arguments may also be nested under a 'parameters' object.",
		),
		mcp.WithString("scheduleId",
			mcp.Description("Handle returned by plan_generate (required)"),
		),
	)
}

// Handle processes the plan_credit_summary tool call.
func (t *CreditSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(req)
	handle, err := requireHandle(a)
	if err != nil {
		return failResult(err), nil
	}

	p, err := t.store.Get(handle)
	if err != nil {
		return failResult(err), nil
	}
	sum := plan.CreditSummary(p)

	msg := fmt.Sprintf("%d of %d credits planned (%s)", sum.CurrentCredits, sum.TargetCredits, sum.Status)
	return okResult(msg, nil, map[string]any{"summary": sum}), nil
}
