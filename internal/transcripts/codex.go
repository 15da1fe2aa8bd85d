package transcripts

import (
	"encoding/json"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/craftlens/craftlens/internal/models"
)

// codexAdapter parses Codex CLI session logs: JSONL files where each line
// is an envelope of {timestamp, type, payload} and conversation content
// lives in response_item payloads.
type codexAdapter struct{}

func (a *codexAdapter) Source() string       { return "codex" }
func (a *codexAdapter) Extensions() []string { return []string{".jsonl"} }

func (a *codexAdapter) Units(data []byte) [][]byte { return jsonlUnits(data) }

func (a *codexAdapter) SessionID(path string) string { return sessionIDFromPath(path) }

var codexRoles = map[string]models.Role{
	"user":      models.RoleUser,
	"assistant": models.RoleAssistant,
	"system":    models.RoleSystem,
	"developer": models.RoleSystem,
}

type codexEnvelope struct {
	Timestamp string       `mapstructure:"timestamp"`
	Type      string       `mapstructure:"type"`
	Payload   codexPayload `mapstructure:"payload"`
}

type codexPayload struct {
	Type         string         `mapstructure:"type"`
	Role         string         `mapstructure:"role"`
	Content      any            `mapstructure:"content"`
	Summary      any            `mapstructure:"summary"`
	Name         string         `mapstructure:"name"`
	Arguments    string         `mapstructure:"arguments"`
	Output       string         `mapstructure:"output"`
	Model        string         `mapstructure:"model"`
	InputTokens  int            `mapstructure:"input_tokens"`
	OutputTokens int            `mapstructure:"output_tokens"`
	Info         map[string]any `mapstructure:"info"`
}

func (a *codexAdapter) ParseUnit(raw []byte) []models.TranscriptMessage {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}

	var env codexEnvelope
	if err := mapstructure.Decode(generic, &env); err != nil {
		return nil
	}

	ts := parseTimestamp(env.Timestamp)

	switch env.Type {
	case "response_item":
		return a.parseResponseItem(env, ts)
	case "event_msg":
		if env.Payload.Type != "token_count" {
			return nil
		}
		usage := models.TokenUsage{Input: env.Payload.InputTokens, Output: env.Payload.OutputTokens}
		if usage.Input == 0 && usage.Output == 0 && env.Payload.Info != nil {
			usage = foldTokenUsage(env.Payload.Info)
		}
		if usage.Input == 0 && usage.Output == 0 {
			return nil
		}
		return []models.TranscriptMessage{{
			Role:       models.RoleSystem,
			Timestamp:  ts,
			TokenUsage: usage,
		}}
	default:
		// session_meta, turn_context, and compaction records carry no
		// conversation content.
		return nil
	}
}

func (a *codexAdapter) parseResponseItem(env codexEnvelope, ts time.Time) []models.TranscriptMessage {
	p := env.Payload

	switch p.Type {
	case "message":
		role, ok := codexRoles[p.Role]
		if !ok {
			return nil
		}
		text := codexBlockText(p.Content)
		if text == "" {
			return nil
		}
		return []models.TranscriptMessage{{
			Role:      role,
			Text:      text,
			Timestamp: ts,
			Model:     p.Model,
		}}
	case "reasoning":
		text := codexBlockText(p.Summary)
		if text == "" {
			text = codexBlockText(p.Content)
		}
		return []models.TranscriptMessage{{
			Role:       models.RoleAssistant,
			Text:       text,
			Timestamp:  ts,
			IsThinking: true,
		}}
	case "function_call", "local_shell_call", "custom_tool_call":
		input := map[string]any{}
		if p.Arguments != "" {
			if err := json.Unmarshal([]byte(p.Arguments), &input); err != nil {
				input = map[string]any{"arguments": p.Arguments}
			}
		}
		name := p.Name
		if name == "" {
			name = "shell"
		}
		return []models.TranscriptMessage{{
			Role:      models.RoleAssistant,
			ToolName:  name,
			ToolInput: input,
			Timestamp: ts,
		}}
	case "function_call_output", "custom_tool_call_output":
		result := p.Output
		if result == "" {
			result = codexBlockText(p.Content)
		}
		return []models.TranscriptMessage{{
			Role:       models.RoleTool,
			ToolResult: result,
			Timestamp:  ts,
		}}
	default:
		return nil
	}
}

// codexBlockText concatenates the text of a typed content-block array.
// Codex spells text blocks input_text, output_text, summary_text, or text
// depending on direction and version.
func codexBlockText(v any) string {
	blocks, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok {
			return s
		}
		return ""
	}

	var parts []string
	for _, b := range blocks {
		block, ok := b.(map[string]any)
		if !ok {
			continue
		}
		if text := stringField(block, "text"); text != "" {
			parts = append(parts, text)
		}
	}
	return joinNonEmpty(parts)
}
