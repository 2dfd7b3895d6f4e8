package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cexll/agentcli-go/pkg/model"
	"github.com/cexll/agentcli-go/pkg/session"
	"github.com/cexll/agentcli-go/pkg/tool"
)

// ErrMaxRounds reports a run aborted because the model kept requesting tools
// past the configured round-trip bound.
var ErrMaxRounds = errors.New("agent: maximum completion rounds exceeded")

// Agent drives the completion loop: send the transcript, execute any tool
// calls the model requests, append their results, repeat until the model
// answers with plain text.
//
// A run alternates between two states. While awaiting the model it sends the
// whole transcript plus the tool schema list; while awaiting tool results it
// dispatches each requested call sequentially, in the order the service
// produced them, so later calls observe the effects of earlier ones.
type Agent struct {
	client   model.Client
	registry *tool.Registry
	cfg      Config
	logger   *log.Logger
	hooks    []Hook
}

// New constructs an Agent. A nil logger discards diagnostics.
func New(client model.Client, registry *tool.Registry, cfg Config, logger *log.Logger) (*Agent, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	if registry == nil {
		return nil, errors.New("registry is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Agent{
		client:   client,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// WithHook returns a shallow copy of the agent with an extra hook.
func (a *Agent) WithHook(h Hook) *Agent {
	if h == nil {
		return a
	}
	clone := *a
	clone.hooks = append(append([]Hook(nil), a.hooks...), h)
	return &clone
}

// Run executes a single prompt to completion and returns the final
// assistant text. Every error it returns is fatal to the run; failures the
// model is expected to recover from never surface here, they travel back to
// the service inside tool result messages.
func (a *Agent) Run(ctx context.Context, prompt string) (*RunResult, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	transcript, err := session.New(prompt)
	if err != nil {
		return nil, err
	}
	if err := runHooks(a.hooks, func(h Hook) error {
		return h.PreRun(ctx, prompt)
	}); err != nil {
		return nil, err
	}

	started := time.Now()
	defs := a.registry.Definitions()
	result := &RunResult{}

	for round := 1; round <= a.cfg.maxRounds(); round++ {
		result.Rounds = round
		a.logger.Printf("round %d: requesting completion (%d messages)", round, transcript.Len())

		resp, err := a.client.Complete(ctx, transcript.Messages(), defs)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if err := transcript.AppendAssistant(resp.Content, resp.ToolCalls); err != nil {
			return nil, err
		}

		if len(resp.ToolCalls) == 0 {
			result.Output = resp.Content
			result.Duration = time.Since(started)
			a.logger.Printf("run complete after %d round(s), %d tool call(s), %s",
				result.Rounds, result.ToolCalls, result.Duration.Round(time.Millisecond))
			if err := runHooks(a.hooks, func(h Hook) error {
				return h.PostRun(ctx, result)
			}); err != nil {
				return nil, err
			}
			return result, nil
		}

		for _, call := range resp.ToolCalls {
			output, err := a.dispatch(ctx, call)
			if err != nil {
				return nil, err
			}
			if err := transcript.AppendToolResult(call.ID, output); err != nil {
				return nil, err
			}
			result.ToolCalls++
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrMaxRounds, a.cfg.maxRounds())
}

// dispatch decodes one tool call's arguments and executes it through the
// registry. Malformed argument JSON, an unknown tool name, and a missing
// required parameter are all treated as the service breaking the tool
// contract, so they abort the run instead of being reported to the model.
func (a *Agent) dispatch(ctx context.Context, call model.ToolCall) (string, error) {
	params, err := decodeArguments(call.Arguments)
	if err != nil {
		return "", fmt.Errorf("tool %s (call %s): %w", call.Name, call.ID, err)
	}
	if err := runHooks(a.hooks, func(h Hook) error {
		return h.PreToolCall(ctx, call.Name, params)
	}); err != nil {
		return "", err
	}

	a.logger.Printf("[tool] %s (call %s)", call.Name, call.ID)
	started := time.Now()
	output, err := a.registry.Execute(ctx, call.Name, params)
	if err != nil {
		return "", fmt.Errorf("tool %s (call %s): %w", call.Name, call.ID, err)
	}
	a.logger.Printf("[tool] %s finished in %s (%d bytes)",
		call.Name, time.Since(started).Round(time.Millisecond), len(output))

	if err := runHooks(a.hooks, func(h Hook) error {
		return h.PostToolCall(ctx, call.Name, output)
	}); err != nil {
		return "", err
	}
	return output, nil
}

func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	if params == nil {
		params = map[string]any{}
	}
	return params, nil
}
