package llm

import "encoding/json"

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a tool invocation requested by the model. Arguments is the
// raw JSON object the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Message is a single conversation message. Assistant messages may carry
// requested tool calls; tool messages answer one call and carry its ID.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

// ToolDef describes a callable tool for the model's function-calling
// mechanism. Parameters is a JSON-schema object.
type ToolDef struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// ChatRequest contains the parameters for one model invocation.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Tools       []ToolDef
	MaxTokens   int
	Temperature float64
}

// ChatResponse is the model's reply: free text, requested tool calls, or
// both.
type ChatResponse struct {
	Message      Message
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// HasToolCalls reports whether the response requests any tool execution.
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.Message.ToolCalls) > 0
}
