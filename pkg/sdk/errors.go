package sdk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoContent is returned when a tool result contains no content items.
var ErrNoContent = errors.New("clickup-mcp: empty tool result")

// ToolError is returned when the server answers a tool call with an error.
// Message is the classified ClickUp error text, unchanged. Code is the
// JSON-RPC error code, or 0 for a result flagged isError.
type ToolError struct {
	Tool    string
	Code    int
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("clickup-mcp: tool %s: %s", e.Tool, e.Message)
}

// RateLimited reports whether the server gave up on a rate-limited call.
func (e *ToolError) RateLimited() bool {
	return strings.HasPrefix(e.Message, "Rate limit exceeded")
}

// NotFound reports whether ClickUp answered 404.
func (e *ToolError) NotFound() bool {
	return strings.HasPrefix(e.Message, "Not found")
}
