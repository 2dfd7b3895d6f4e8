package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cexll/agentcli-go/pkg/model"
)

// Registry keeps the mapping between tool names and implementations. It is
// the single source of truth for valid tool names and their parameter
// contracts; the agent rejects any invocation the registry cannot resolve
// and validate.
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]Tool
	validator Validator
}

// NewRegistry creates a registry backed by the default validator.
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]Tool),
		validator: DefaultValidator{},
	}
}

// Register inserts a tool when its name is not in use.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return fmt.Errorf("tool is nil")
	}
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.tools[name] = t
	return nil
}

// Get fetches a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t, nil
}

// Definitions produces the tool schema list advertised to the completion
// service, sorted by name so every round-trip sends an identical payload.
func (r *Registry) Definitions() []model.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]model.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Schema(),
		})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Execute looks up a tool, validates params against its schema, and runs it.
// Lookup and validation failures are fatal dispatch errors; the tool itself
// reports recoverable failures inside its result string.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}

	r.mu.RLock()
	validator := r.validator
	r.mu.RUnlock()

	if schema := t.Schema(); schema != nil && validator != nil {
		if err := validator.Validate(params, schema); err != nil {
			return "", fmt.Errorf("tool %s: %w", name, err)
		}
	}

	return t.Execute(ctx, params)
}
