package transcripts

import (
	"encoding/json"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/craftlens/craftlens/internal/models"
)

// claudeAdapter parses Claude Code session logs: JSONL files where each
// line wraps a message in a typed envelope and assistant content is an
// array of typed segments (text, tool_use, tool_result, thinking).
type claudeAdapter struct{}

func (a *claudeAdapter) Source() string       { return "claude" }
func (a *claudeAdapter) Extensions() []string { return []string{".jsonl"} }

func (a *claudeAdapter) Units(data []byte) [][]byte { return jsonlUnits(data) }

func (a *claudeAdapter) SessionID(path string) string { return sessionIDFromPath(path) }

var claudeRoles = map[string]models.Role{
	"user":      models.RoleUser,
	"assistant": models.RoleAssistant,
	"system":    models.RoleSystem,
}

type claudeRecord struct {
	Type      string        `mapstructure:"type"`
	Timestamp string        `mapstructure:"timestamp"`
	Message   claudeMessage `mapstructure:"message"`
	IsMeta    bool          `mapstructure:"isMeta"`
}

type claudeMessage struct {
	Role    string         `mapstructure:"role"`
	Model   string         `mapstructure:"model"`
	Content any            `mapstructure:"content"`
	Usage   map[string]any `mapstructure:"usage"`
}

func (a *claudeAdapter) ParseUnit(raw []byte) []models.TranscriptMessage {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}

	var rec claudeRecord
	if err := mapstructure.Decode(generic, &rec); err != nil {
		return nil
	}

	role, ok := claudeRoles[rec.Type]
	if !ok || rec.IsMeta {
		// Summaries, file snapshots, and other envelope types are not
		// conversation content.
		return nil
	}
	if rec.Message.Role != "" {
		if mapped, ok := claudeRoles[rec.Message.Role]; ok {
			role = mapped
		}
	}

	ts := parseTimestamp(rec.Timestamp)
	usage := foldTokenUsage(rec.Message.Usage)

	switch content := rec.Message.Content.(type) {
	case string:
		if content == "" {
			return nil
		}
		return []models.TranscriptMessage{{
			Role:       role,
			Text:       content,
			Timestamp:  ts,
			TokenUsage: usage,
			Model:      rec.Message.Model,
		}}
	case []any:
		return claudeSegments(content, role, ts, usage, rec.Message.Model)
	default:
		return nil
	}
}

// claudeSegments expands a typed content array into normalized messages.
// Token usage is attached to the first message produced so per-record
// totals are counted exactly once.
func claudeSegments(segments []any, role models.Role, ts time.Time, usage models.TokenUsage, model string) []models.TranscriptMessage {
	var out []models.TranscriptMessage

	for _, seg := range segments {
		block, ok := seg.(map[string]any)
		if !ok {
			continue
		}

		var msg models.TranscriptMessage
		switch stringField(block, "type") {
		case "text":
			text := stringField(block, "text")
			if text == "" {
				continue
			}
			msg = models.TranscriptMessage{Role: role, Text: text}
		case "thinking":
			msg = models.TranscriptMessage{Role: role, Text: stringField(block, "thinking"), IsThinking: true}
		case "tool_use":
			input, _ := block["input"].(map[string]any)
			msg = models.TranscriptMessage{
				Role:      models.RoleAssistant,
				ToolName:  stringField(block, "name"),
				ToolInput: input,
			}
		case "tool_result":
			msg = models.TranscriptMessage{
				Role:       models.RoleTool,
				ToolResult: flattenResult(block["content"]),
				IsError:    boolField(block, "is_error"),
			}
		default:
			continue
		}

		msg.Timestamp = ts
		msg.Model = model
		if len(out) == 0 {
			msg.TokenUsage = usage
		}
		out = append(out, msg)
	}

	return out
}

// flattenResult renders a tool result that may be a plain string or a
// nested content-block array.
func flattenResult(v any) string {
	switch content := v.(type) {
	case string:
		return content
	case []any:
		var parts []string
		for _, seg := range content {
			if block, ok := seg.(map[string]any); ok {
				if text := stringField(block, "text"); text != "" {
					parts = append(parts, text)
				}
			}
		}
		return joinNonEmpty(parts)
	default:
		return ""
	}
}
