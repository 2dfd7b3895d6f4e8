package model

// Conversation roles. The completion service only ever sees these three.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single conversational turn exchanged with the
// completion service. ToolCalls is populated only on assistant turns that
// request tool execution; ToolCallID only on tool turns, correlating the
// result with the request it answers.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall captures a tool invocation emitted by an assistant message.
// Arguments carries the raw JSON parameter bundle exactly as the service
// produced it; decoding is the dispatcher's job.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// UserMessage builds a user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant turn carrying optional tool calls.
func AssistantMessage(content string, calls []ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// ToolMessage builds a tool-result turn answering the call with the given id.
func ToolMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}
