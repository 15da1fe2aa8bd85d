package transcripts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlens/craftlens/internal/models"
)

func TestClaudeParseUnitUserText(t *testing.T) {
	a := &claudeAdapter{}

	msgs := a.ParseUnit([]byte(`{
		"type": "user",
		"timestamp": "2026-08-01T10:00:00Z",
		"message": {"role": "user", "content": "fix the login bug"}
	}`))

	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "fix the login bug", msgs[0].Text)
	assert.Equal(t, 2026, msgs[0].Timestamp.Year())
}

func TestClaudeParseUnitAssistantSegments(t *testing.T) {
	a := &claudeAdapter{}

	msgs := a.ParseUnit([]byte(`{
		"type": "assistant",
		"timestamp": "2026-08-01T10:01:00Z",
		"message": {
			"role": "assistant",
			"model": "claude-sonnet-4",
			"usage": {"input_tokens": 120, "output_tokens": 45},
			"content": [
				{"type": "thinking", "thinking": "need to inspect the handler"},
				{"type": "text", "text": "Looking at the handler now."},
				{"type": "tool_use", "name": "Grep", "input": {"pattern": "login"}},
				{"type": "tool_result", "content": "3 matches", "is_error": false}
			]
		}
	}`))

	require.Len(t, msgs, 4)

	assert.True(t, msgs[0].IsThinking)
	assert.Equal(t, "need to inspect the handler", msgs[0].Text)

	assert.Equal(t, "Looking at the handler now.", msgs[1].Text)

	assert.Equal(t, "Grep", msgs[2].ToolName)
	assert.Equal(t, "login", msgs[2].ToolInput["pattern"])
	assert.True(t, msgs[2].IsToolCall())

	assert.Equal(t, models.RoleTool, msgs[3].Role)
	assert.Equal(t, "3 matches", msgs[3].ToolResult)

	// Usage counted exactly once per record.
	assert.Equal(t, 120, msgs[0].TokenUsage.Input)
	assert.Equal(t, 45, msgs[0].TokenUsage.Output)
	assert.Zero(t, msgs[1].TokenUsage.Input)
}

func TestClaudeParseUnitTokenSpellings(t *testing.T) {
	a := &claudeAdapter{}

	tests := []struct {
		name  string
		usage string
	}{
		{"snake_case", `{"input_tokens": 10, "output_tokens": 20}`},
		{"camel_case", `{"inputTokens": 10, "outputTokens": 20}`},
		{"openai_style", `{"prompt_tokens": 10, "completion_tokens": 20}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := a.ParseUnit([]byte(`{
				"type": "assistant",
				"message": {"role": "assistant", "content": "ok", "usage": ` + tt.usage + `}
			}`))
			require.Len(t, msgs, 1)
			assert.Equal(t, 10, msgs[0].TokenUsage.Input)
			assert.Equal(t, 20, msgs[0].TokenUsage.Output)
		})
	}
}

func TestClaudeParseUnitErrorResult(t *testing.T) {
	a := &claudeAdapter{}

	msgs := a.ParseUnit([]byte(`{
		"type": "user",
		"message": {"role": "user", "content": [
			{"type": "tool_result", "content": [{"type": "text", "text": "command failed"}], "is_error": true}
		]}
	}`))

	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleTool, msgs[0].Role)
	assert.True(t, msgs[0].IsError)
	assert.Equal(t, "command failed", msgs[0].ToolResult)
}

func TestClaudeParseUnitDropsUnusable(t *testing.T) {
	a := &claudeAdapter{}

	tests := []struct {
		name string
		raw  string
	}{
		{"not_json", "not json at all"},
		{"summary_record", `{"type": "summary", "summary": "a session"}`},
		{"meta_record", `{"type": "user", "isMeta": true, "message": {"role": "user", "content": "x"}}`},
		{"empty_content", `{"type": "user", "message": {"role": "user", "content": ""}}`},
		{"numeric_content", `{"type": "user", "message": {"role": "user", "content": 42}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, a.ParseUnit([]byte(tt.raw)))
		})
	}
}
