package model

import (
	"context"
	"errors"
)

// ErrNoChoices reports a completion response that carried no candidates.
// The service contract guarantees at least one; its absence is fatal.
var ErrNoChoices = errors.New("completion response contains no choices")

// ToolDefinition describes one tool advertised to the completion service.
// Parameters holds the JSON Schema for the tool's arguments.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  any
}

// Response is the consulted portion of a completion: the first candidate's
// text content and its ordered tool invocation requests.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Client issues one round-trip to the completion service: the full transcript
// plus the tool definitions go out, the first candidate comes back.
type Client interface {
	Complete(ctx context.Context, messages []Message, tools []ToolDefinition) (*Response, error)
}
