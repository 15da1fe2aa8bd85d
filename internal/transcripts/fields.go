package transcripts

import (
	"strings"
	"time"

	"github.com/craftlens/craftlens/internal/models"
)

// Historical spellings of token-usage fields across tool versions. The
// first matching spelling wins.
var (
	inputTokenKeys  = []string{"input_tokens", "inputTokens", "prompt_tokens", "input"}
	outputTokenKeys = []string{"output_tokens", "outputTokens", "completion_tokens", "output"}
)

// foldTokenUsage reads token counts from a usage map under any of the
// historical spellings. A missing or malformed map yields zero usage.
func foldTokenUsage(usage map[string]any) models.TokenUsage {
	if usage == nil {
		return models.TokenUsage{}
	}
	return models.TokenUsage{
		Input:  firstInt(usage, inputTokenKeys),
		Output: firstInt(usage, outputTokenKeys),
	}
}

func firstInt(m map[string]any, keys []string) int {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if n, ok := toInt(v); ok {
				return n
			}
		}
	}
	return 0
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
}

// parseTimestamp tries the known layouts; an unparseable value yields the
// zero time, which downstream treats as "no timestamp".
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
