package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cexll/agentcli-go/pkg/model"
)

// DefaultBaseURL targets OpenRouter's OpenAI-compatible endpoint. Any other
// compatible endpoint works through the base URL override.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Ensure Client satisfies the model.Client interface at compile time.
var _ model.Client = (*Client)(nil)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// Options configure a Client. APIKey and Model are required.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewClient builds a Client for the configured endpoint.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("openrouter api key is required")
	}
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		return nil, errors.New("openrouter model name is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = sanitizeBaseURL(opts.BaseURL)

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: modelName,
	}, nil
}

// Complete sends the full transcript plus tool definitions and returns the
// first candidate. A response without candidates is model.ErrNoChoices.
func (c *Client) Complete(ctx context.Context, messages []model.Message, tools []model.ToolDefinition) (*model.Response, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: encodeMessages(messages),
	}
	if len(tools) > 0 {
		req.Tools = encodeTools(tools)
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, model.ErrNoChoices
	}

	choice := resp.Choices[0].Message
	return &model.Response{
		Content:   choice.Content,
		ToolCalls: decodeToolCalls(choice.ToolCalls),
	}, nil
}

func sanitizeBaseURL(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return DefaultBaseURL
	}
	return trimmed
}

func encodeMessages(messages []model.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		encoded := openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			encoded.ToolCalls = append(encoded.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out[i] = encoded
	}
	return out
}

func encodeTools(tools []model.ToolDefinition) []openai.Tool {
	out := make([]openai.Tool, len(tools))
	for i, def := range tools {
		out[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		}
	}
	return out
}

func decodeToolCalls(calls []openai.ToolCall) []model.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]model.ToolCall, len(calls))
	for i, call := range calls {
		out[i] = model.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return out
}
