package transcripts

import (
	"encoding/json"

	"github.com/go-viper/mapstructure/v2"

	"github.com/craftlens/craftlens/internal/models"
)

// geminiAdapter parses Gemini CLI session checkpoints: a single JSON
// document whose messages array holds the whole conversation. Units are
// the individual array elements.
type geminiAdapter struct{}

func (a *geminiAdapter) Source() string       { return "gemini" }
func (a *geminiAdapter) Extensions() []string { return []string{".json"} }

func (a *geminiAdapter) SessionID(path string) string { return sessionIDFromPath(path) }

func (a *geminiAdapter) Units(data []byte) [][]byte {
	var doc struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	units := make([][]byte, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		units = append(units, []byte(m))
	}
	return units
}

var geminiRoles = map[string]models.Role{
	"user":   models.RoleUser,
	"gemini": models.RoleAssistant,
	"system": models.RoleSystem,
}

type geminiMessage struct {
	Type      string         `mapstructure:"type"`
	Timestamp string         `mapstructure:"timestamp"`
	Content   string         `mapstructure:"content"`
	Thoughts  []any          `mapstructure:"thoughts"`
	Name      string         `mapstructure:"name"`
	Args      map[string]any `mapstructure:"args"`
	Result    string         `mapstructure:"result"`
	Status    string         `mapstructure:"status"`
	Model     string         `mapstructure:"model"`
	Tokens    map[string]any `mapstructure:"tokens"`
}

func (a *geminiAdapter) ParseUnit(raw []byte) []models.TranscriptMessage {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}

	var msg geminiMessage
	if err := mapstructure.Decode(generic, &msg); err != nil {
		return nil
	}

	ts := parseTimestamp(msg.Timestamp)
	usage := foldTokenUsage(msg.Tokens)

	switch msg.Type {
	case "user", "gemini", "system":
		role := geminiRoles[msg.Type]
		out := []models.TranscriptMessage{{
			Role:       role,
			Text:       msg.Content,
			Timestamp:  ts,
			TokenUsage: usage,
			Model:      msg.Model,
		}}
		for _, th := range msg.Thoughts {
			block, ok := th.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, models.TranscriptMessage{
				Role:       models.RoleAssistant,
				Text:       stringField(block, "description"),
				Timestamp:  ts,
				IsThinking: true,
			})
		}
		return out
	case "tool":
		call := models.TranscriptMessage{
			Role:      models.RoleAssistant,
			ToolName:  msg.Name,
			ToolInput: msg.Args,
			Timestamp: ts,
		}
		result := models.TranscriptMessage{
			Role:       models.RoleTool,
			ToolResult: msg.Result,
			Timestamp:  ts,
			IsError:    msg.Status == "error",
		}
		return []models.TranscriptMessage{call, result}
	default:
		return nil
	}
}
