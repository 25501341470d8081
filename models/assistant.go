package models

// Stream event types emitted by the assistant chat endpoint. One JSON object
// per "data:" line, tagged by Type.
const (
	EventThinking   = "thinking"
	EventToolStart  = "tool_start"
	EventToolResult = "tool_result"
	EventText       = "text"
	EventError      = "error"
)

// StreamEvent is a single event in the assistant's streaming response.
// CallID pairs a tool_start with its tool_result so the client can match them
// even when the same tool runs more than once in one turn.
type StreamEvent struct {
	Type    string         `json:"type"`
	Content string         `json:"content,omitempty"`
	Message string         `json:"message,omitempty"`
	CallID  string         `json:"callId,omitempty"`
	Tool    string         `json:"tool,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Success *bool          `json:"success,omitempty"`
}

// ChatRequest is the payload coming from the staff dashboard into the
// assistant chat endpoint.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ChatMessage is one persisted turn fragment of a conversation. Only plain
// text is kept between turns; tool calls are transient within a turn.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}
