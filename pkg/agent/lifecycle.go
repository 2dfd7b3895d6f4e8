package agent

import "context"

// Hook allows callers to observe important lifecycle moments of a run.
type Hook interface {
	PreRun(ctx context.Context, prompt string) error
	PostRun(ctx context.Context, result *RunResult) error
	PreToolCall(ctx context.Context, toolName string, params map[string]any) error
	PostToolCall(ctx context.Context, toolName string, output string) error
}

// NopHook offers a convenient zero-cost implementation for optional methods.
type NopHook struct{}

func (NopHook) PreRun(context.Context, string) error                      { return nil }
func (NopHook) PostRun(context.Context, *RunResult) error                 { return nil }
func (NopHook) PreToolCall(context.Context, string, map[string]any) error { return nil }
func (NopHook) PostToolCall(context.Context, string, string) error        { return nil }

func runHooks(hooks []Hook, fn func(Hook) error) error {
	for _, hook := range hooks {
		if err := fn(hook); err != nil {
			return err
		}
	}
	return nil
}
