// Package tools implements the MCP tool handlers for the schedule engine.
//
// Each tool follows the same pattern:
// - a struct with dependencies (store.Store, archive.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() validates input, runs one operation, and returns the result
//
// Callers are autonomous agents, so every response — success or failure —
// is the same JSON envelope {success, message, status, data?, schedule?}.
// Validation failures are in-band results, never Go errors: the stored
// schedule is left untouched and the agent gets a message it can act on.
package tools

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmoreno/semplan/internal/plan"
)

// envelope is the uniform tool response shape.
type envelope struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Status   int                `json:"status"`
	Data     map[string]any     `json:"data,omitempty"`
	Schedule *plan.SchedulePlan `json:"schedule,omitempty"`
}

// okResult builds a success envelope. schedule and data may be nil.
func okResult(message string, schedule *plan.SchedulePlan, data map[string]any) *mcp.CallToolResult {
	return encodeResult(envelope{
		Success:  true,
		Message:  message,
		Status:   http.StatusOK,
		Data:     data,
		Schedule: schedule,
	}, false)
}

// failResult maps an operation error into a failure envelope with its
// HTTP-equivalent status. Unknown errors come out as 500s.
func failResult(err error) *mcp.CallToolResult {
	pe := plan.AsError(err)
	return encodeResult(envelope{
		Success: false,
		Message: pe.Message,
		Status:  pe.Status(),
		Data:    failData(pe),
	}, true)
}

func failData(pe *plan.Error) map[string]any {
	data := map[string]any{"kind": string(pe.Kind)}
	if pe.Field != "" {
		data["field"] = pe.Field
	}
	return data
}

func encodeResult(env envelope, isError bool) *mcp.CallToolResult {
	b, err := json.Marshal(env)
	if err != nil {
		// Marshal of our own types only fails on programming errors.
		return mcp.NewToolResultError(fmt.Sprintf(`{"success":false,"message":%q,"status":500}`, err.Error()))
	}
	if isError {
		return mcp.NewToolResultError(string(b))
	}
	return mcp.NewToolResultText(string(b))
}

// args flattens the request arguments. Agents send parameters either at
// the top level or nested under a "parameters" object; both forms are
// accepted identically (top-level keys win when both supply a value).
func args(req mcp.CallToolRequest) map[string]any {
	raw := req.GetArguments()
	merged := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "parameters" {
			merged[k] = v
		}
	}
	if nested, ok := raw["parameters"].(map[string]any); ok {
		for k, v := range nested {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}
	return merged
}

// stringArg extracts a string argument, or "" if absent.
func stringArg(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64). Numeric strings are
// accepted too — agents are sloppy about types.
func intArg(m map[string]any, key string, defaultVal int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return defaultVal
}

// boolArg extracts a boolean argument.
func boolArg(m map[string]any, key string, defaultVal bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return defaultVal
}

// stringSliceArg extracts a list-of-strings argument.
func stringSliceArg(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// requireHandle pulls the schedule handle out of the arguments.
func requireHandle(m map[string]any) (string, error) {
	handle := stringArg(m, "scheduleId")
	if handle == "" {
		return "", plan.Errf(plan.KindValidation, "scheduleId", "'scheduleId' is required")
	}
	return handle, nil
}
