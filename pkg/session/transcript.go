package session

import (
	"errors"
	"fmt"

	"github.com/cexll/agentcli-go/pkg/model"
)

// Transcript append errors.
var (
	// ErrEmptyPrompt rejects seeding a transcript with a blank prompt.
	ErrEmptyPrompt = errors.New("session: prompt is empty")
	// ErrPendingToolCalls rejects an assistant turn while earlier tool
	// calls are still unanswered.
	ErrPendingToolCalls = errors.New("session: pending tool calls unanswered")
	// ErrOrphanToolResult rejects a tool result that answers no call from
	// the most recent assistant turn.
	ErrOrphanToolResult = errors.New("session: tool result matches no pending call")
	// ErrDuplicateToolResult rejects a second answer to the same call.
	ErrDuplicateToolResult = errors.New("session: tool call already answered")
)

// Transcript is the append-only conversation state for one agent run: the
// ordered sequence of user, assistant, and tool messages resent in full on
// every round-trip. It is owned by exactly one run and is not safe for
// concurrent use.
//
// The transcript enforces the correlation invariant at append time: every
// tool result must answer exactly one still-pending call from the most
// recent assistant turn, and a new assistant turn is only legal once no
// calls are pending.
type Transcript struct {
	messages []model.Message
	pending  map[string]bool
}

// New creates a transcript seeded with the user's prompt. The prompt is
// forwarded verbatim, whitespace included; only the empty string is rejected.
func New(prompt string) (*Transcript, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	return &Transcript{
		messages: []model.Message{model.UserMessage(prompt)},
		pending:  make(map[string]bool),
	}, nil
}

// AppendAssistant records a service response turn and marks its tool calls
// as pending.
func (t *Transcript) AppendAssistant(content string, calls []model.ToolCall) error {
	if n := t.Pending(); n > 0 {
		return fmt.Errorf("%w: %d outstanding", ErrPendingToolCalls, n)
	}
	t.messages = append(t.messages, model.AssistantMessage(content, calls))
	for _, call := range calls {
		t.pending[call.ID] = true
	}
	return nil
}

// AppendToolResult records the result text for the pending call with the
// given id.
func (t *Transcript) AppendToolResult(callID, content string) error {
	awaiting, known := t.pending[callID]
	if !known {
		return fmt.Errorf("%w: %s", ErrOrphanToolResult, callID)
	}
	if !awaiting {
		return fmt.Errorf("%w: %s", ErrDuplicateToolResult, callID)
	}
	t.pending[callID] = false
	t.messages = append(t.messages, model.ToolMessage(callID, content))
	return nil
}

// Pending reports how many tool calls still await a result.
func (t *Transcript) Pending() int {
	n := 0
	for _, awaiting := range t.pending {
		if awaiting {
			n++
		}
	}
	return n
}

// Messages returns a snapshot of the transcript in append order.
func (t *Transcript) Messages() []model.Message {
	out := make([]model.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len reports the number of recorded messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}
