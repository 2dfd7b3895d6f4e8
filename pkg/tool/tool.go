package tool

import (
	"context"
	"errors"
)

// ErrUnknownTool reports a lookup for a name absent from the registry.
// The agent treats this as a service contract violation, not a condition
// the model gets to recover from.
var ErrUnknownTool = errors.New("tool: unknown tool")

// Tool is one local capability advertised to the completion service.
//
// Execute receives the decoded parameter mapping after registry-level
// validation and returns the result text fed back to the model. Recoverable
// failures (a command exiting non-zero, a shell that cannot be launched)
// belong in the returned string so the model can adapt; a non-nil error is
// fatal to the whole run.
type Tool interface {
	Name() string
	Description() string
	Schema() *JSONSchema
	Execute(ctx context.Context, params map[string]any) (string, error)
}
