package transcripts

import (
	"log/slog"
	"os"

	"github.com/craftlens/craftlens/internal/models"
)

// Parse reads one transcript file and normalizes it. It never returns an
// error: an unreadable file or unknown source yields nil, and a file with
// no usable units yields a transcript with an empty message list.
// Malformed units are skipped.
func Parse(path, source string) *models.ParsedTranscript {
	adapter, ok := Lookup(source)
	if !ok {
		slog.Debug("no adapter for source", "source", source)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("transcript unreadable", "path", path, "error", err)
		return nil
	}

	parsed := &models.ParsedTranscript{
		Source:    source,
		SessionID: adapter.SessionID(path),
		FilePath:  path,
		Messages:  []models.TranscriptMessage{},
	}

	for _, unit := range adapter.Units(data) {
		msgs := parseUnitSafe(adapter, unit)
		parsed.Messages = append(parsed.Messages, msgs...)
	}

	for _, m := range parsed.Messages {
		if m.Timestamp.IsZero() {
			continue
		}
		if parsed.StartTime.IsZero() || m.Timestamp.Before(parsed.StartTime) {
			parsed.StartTime = m.Timestamp
		}
		if m.Timestamp.After(parsed.EndTime) {
			parsed.EndTime = m.Timestamp
		}
	}

	return parsed
}

// parseUnitSafe guards against adapter panics on hostile input; a panicking
// unit is treated the same as a malformed one.
func parseUnitSafe(adapter Adapter, unit []byte) (msgs []models.TranscriptMessage) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("adapter panic on unit", "source", adapter.Source(), "panic", r)
			msgs = nil
		}
	}()
	return adapter.ParseUnit(unit)
}
