package transcripts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlens/craftlens/internal/models"
)

func TestParseUnknownSource(t *testing.T) {
	assert.Nil(t, Parse("whatever.jsonl", "copilot"))
}

func TestParseUnreadableFile(t *testing.T) {
	assert.Nil(t, Parse(filepath.Join(t.TempDir(), "missing.jsonl"), "claude"))
}

func TestParseGarbageYieldsEmptyTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session-junk.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\nstill not json\n"), 0o644))

	parsed := Parse(path, "claude")
	require.NotNil(t, parsed)
	assert.Equal(t, "claude", parsed.Source)
	assert.Equal(t, "junk", parsed.SessionID)
	assert.Empty(t, parsed.Messages)
	assert.True(t, parsed.StartTime.IsZero())
}

func TestParseComputesTimeWindow(t *testing.T) {
	lines := `{"type": "user", "timestamp": "2026-08-02T10:30:00Z", "message": {"role": "user", "content": "later message"}}
{"type": "user", "timestamp": "2026-08-02T09:00:00Z", "message": {"role": "user", "content": "earlier message"}}
not a json line
{"type": "user", "timestamp": "2026-08-02T11:45:00Z", "message": {"role": "user", "content": "latest message"}}
`
	path := filepath.Join(t.TempDir(), "window.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

	parsed := Parse(path, "claude")
	require.NotNil(t, parsed)
	require.Len(t, parsed.Messages, 3)
	assert.Equal(t, models.RoleUser, parsed.Messages[0].Role)
	assert.Equal(t, time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), parsed.StartTime)
	assert.Equal(t, time.Date(2026, 8, 2, 11, 45, 0, 0, time.UTC), parsed.EndTime)
}

func TestParseGeminiDocument(t *testing.T) {
	doc := `{
		"sessionId": "s1",
		"messages": [
			{"type": "user", "timestamp": "2026-08-03T08:00:00Z", "content": "fix the bug"},
			{"type": "tool", "name": "read_file", "args": {"path": "main.go"}, "result": "package main"}
		]
	}`
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	parsed := Parse(path, "gemini")
	require.NotNil(t, parsed)
	require.Len(t, parsed.Messages, 3)
	assert.True(t, parsed.Messages[1].IsToolCall())
	assert.Equal(t, models.RoleTool, parsed.Messages[2].Role)
}
