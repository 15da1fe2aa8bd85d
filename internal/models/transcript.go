package models

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// TokenUsage holds token counts reported by the assistant tool, when present.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// TranscriptMessage is one normalized event from a session transcript.
// Tool calls carry ToolName and ToolInput; tool results arrive with
// RoleTool and ToolResult set. The boolean flags are independent.
type TranscriptMessage struct {
	Role       Role           `json:"role"`
	Text       string         `json:"text,omitempty"`
	Timestamp  time.Time      `json:"timestamp,omitempty"`
	ToolName   string         `json:"tool_name,omitempty"`
	ToolInput  map[string]any `json:"tool_input,omitempty"`
	ToolResult string         `json:"tool_result,omitempty"`
	TokenUsage TokenUsage     `json:"token_usage,omitempty"`
	Model      string         `json:"model,omitempty"`
	IsThinking bool           `json:"is_thinking,omitempty"`
	IsError    bool           `json:"is_error,omitempty"`
}

// IsToolCall reports whether the message represents a tool invocation.
func (m *TranscriptMessage) IsToolCall() bool {
	return m.ToolName != "" && m.Role == RoleAssistant
}

// ParsedTranscript is the normalized form of one session file. It exists
// only for the duration of a single analysis call and is never persisted.
type ParsedTranscript struct {
	Source    string
	SessionID string
	FilePath  string
	Messages  []TranscriptMessage
	StartTime time.Time
	EndTime   time.Time
}
