package transcripts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/craftlens/craftlens/internal/models"
)

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "", joinNonEmpty(nil))
	assert.Equal(t, "", joinNonEmpty([]string{"", ""}))
	assert.Equal(t, "a\nb", joinNonEmpty([]string{"a", "b"}))
	assert.Equal(t, "a\nb", joinNonEmpty([]string{"", "a", "", "b", ""}))
}

func TestFoldTokenUsage(t *testing.T) {
	assert.Equal(t, models.TokenUsage{}, foldTokenUsage(nil))

	usage := foldTokenUsage(map[string]any{"input_tokens": float64(12), "output_tokens": float64(7)})
	assert.Equal(t, models.TokenUsage{Input: 12, Output: 7}, usage)

	// non-numeric values are skipped, not coerced
	usage = foldTokenUsage(map[string]any{"input_tokens": "12", "output": float64(7)})
	assert.Equal(t, models.TokenUsage{Input: 0, Output: 7}, usage)
}

func TestParseTimestamp(t *testing.T) {
	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("yesterday").IsZero())

	ts := parseTimestamp("2026-08-01T10:00:00.250Z")
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 250_000_000, time.UTC), ts)
}
