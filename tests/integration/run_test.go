package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cexll/agentcli-go/pkg/agent"
	"github.com/cexll/agentcli-go/pkg/model/openrouter"
	"github.com/cexll/agentcli-go/pkg/tool"
	toolbuiltin "github.com/cexll/agentcli-go/pkg/tool/builtin"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role       string `json:"role"`
		Content    string `json:"content"`
		ToolCallID string `json:"tool_call_id"`
	} `json:"messages"`
	Tools []struct {
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	} `json:"tools"`
}

// scriptedServer replays canned chat-completion responses and records every
// request body it decodes.
type scriptedServer struct {
	responses []string
	requests  []chatRequest
}

func (s *scriptedServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		s.requests = append(s.requests, req)

		require.NotEmpty(t, s.responses, "server script exhausted")
		body := s.responses[0]
		s.responses = s.responses[1:]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func toolCallResponse(id, name, arguments string) string {
	args, _ := json.Marshal(arguments)
	return fmt.Sprintf(`{
		"choices": [{"message": {
			"role": "assistant",
			"tool_calls": [{
				"id": %q,
				"type": "function",
				"function": {"name": %q, "arguments": %s}
			}]
		}}]
	}`, id, name, args)
}

func textResponse(content string) string {
	body, _ := json.Marshal(content)
	return fmt.Sprintf(`{"choices": [{"message": {"role": "assistant", "content": %s}}]}`, body)
}

func newRunner(t *testing.T, srv *scriptedServer) *agent.Agent {
	t.Helper()
	server := httptest.NewServer(srv.handler(t))
	t.Cleanup(server.Close)

	client, err := openrouter.NewClient(openrouter.Options{
		APIKey:  "sk-test",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
	})
	require.NoError(t, err)

	registry := tool.NewRegistry()
	for _, impl := range []tool.Tool{
		toolbuiltin.NewReadTool(),
		toolbuiltin.NewWriteTool(),
		toolbuiltin.NewBashTool(),
	} {
		require.NoError(t, registry.Register(impl))
	}

	runner, err := agent.New(client, registry, agent.Config{}, nil)
	require.NoError(t, err)
	return runner
}

func TestFullLoopWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	writeArgs, _ := json.Marshal(map[string]string{"file_path": path, "content": "pinned"})
	readArgs, _ := json.Marshal(map[string]string{"file_path": path})

	srv := &scriptedServer{responses: []string{
		toolCallResponse("call_w", "Write", string(writeArgs)),
		toolCallResponse("call_r", "Read", string(readArgs)),
		textResponse("the file says pinned"),
	}}
	runner := newRunner(t, srv)

	result, err := runner.Run(context.Background(), "write then read back "+path)
	require.NoError(t, err)
	assert.Equal(t, "the file says pinned", result.Output)
	assert.Equal(t, 3, result.Rounds)
	assert.Equal(t, 2, result.ToolCalls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pinned", string(data))

	// Every request advertises the three builtins.
	require.Len(t, srv.requests, 3)
	for _, req := range srv.requests {
		names := make([]string, 0, len(req.Tools))
		for _, def := range req.Tools {
			names = append(names, def.Function.Name)
		}
		assert.Equal(t, []string{"Bash", "Read", "Write"}, names)
	}

	// The final request carries the full correlated transcript.
	last := srv.requests[2].Messages
	require.Len(t, last, 5)
	assert.Equal(t, "user", last[0].Role)
	assert.Equal(t, "assistant", last[1].Role)
	assert.Equal(t, "tool", last[2].Role)
	assert.Equal(t, "call_w", last[2].ToolCallID)
	assert.Equal(t, "tool", last[4].Role)
	assert.Equal(t, "call_r", last[4].ToolCallID)
	assert.Equal(t, "pinned", last[4].Content)
}

func TestFullLoopBashFailureIsReportedToModel(t *testing.T) {
	srv := &scriptedServer{responses: []string{
		toolCallResponse("call_b", "Bash", `{"command":"echo boom >&2; exit 7"}`),
		textResponse("that command failed with code 7"),
	}}
	runner := newRunner(t, srv)

	result, err := runner.Run(context.Background(), "run a failing command")
	require.NoError(t, err)
	assert.Equal(t, "that command failed with code 7", result.Output)

	require.Len(t, srv.requests, 2)
	toolMsg := srv.requests[1].Messages[2]
	assert.Equal(t, "tool", toolMsg.Role)
	assert.Contains(t, toolMsg.Content, "exit code 7")
	assert.Contains(t, toolMsg.Content, "boom")
}

func TestFullLoopUnknownToolAborts(t *testing.T) {
	srv := &scriptedServer{responses: []string{
		toolCallResponse("call_x", "Delete", `{"file_path":"x"}`),
	}}
	runner := newRunner(t, srv)

	_, err := runner.Run(context.Background(), "try an unsupported tool")
	assert.ErrorIs(t, err, tool.ErrUnknownTool)
}
