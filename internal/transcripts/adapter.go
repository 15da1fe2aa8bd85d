// Package transcripts discovers session transcript files written by
// monitored AI assistant tools and normalizes them into a common message
// sequence. Each supported tool has its own format adapter; all adapters
// share the same unit-splitting and parsing contract.
package transcripts

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/craftlens/craftlens/internal/models"
)

// Adapter normalizes one tool's transcript format. ParseUnit must never
// panic on malformed input; it returns nil for units it cannot use.
type Adapter interface {
	// Source returns the tool identifier this adapter handles.
	Source() string

	// Extensions lists the file extensions this adapter's transcripts use.
	Extensions() []string

	// Units splits raw file content into independently parseable units.
	Units(data []byte) [][]byte

	// ParseUnit parses one unit into zero or more normalized messages.
	// Unrecognized unit types yield nil.
	ParseUnit(raw []byte) []models.TranscriptMessage

	// SessionID derives a session identifier from a transcript file path.
	SessionID(path string) string
}

var adapters = map[string]Adapter{}

func register(a Adapter) {
	adapters[a.Source()] = a
}

func init() {
	register(&claudeAdapter{})
	register(&codexAdapter{})
	register(&geminiAdapter{})
}

// Lookup returns the adapter registered for a source tag.
func Lookup(source string) (Adapter, bool) {
	a, ok := adapters[source]
	return a, ok
}

// Sources returns all registered source tags, sorted.
func Sources() []string {
	out := make([]string, 0, len(adapters))
	for s := range adapters {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// jsonlUnits splits newline-delimited JSON into one unit per line.
// The buffer allows large lines such as instruction payloads.
func jsonlUnits(data []byte) [][]byte {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	const maxCapacity = 8 * 1024 * 1024
	scanner.Buffer(make([]byte, 1024), maxCapacity)

	var units [][]byte
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		unit := make([]byte, len(line))
		copy(unit, line)
		units = append(units, unit)
	}
	return units
}

var sessionDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}(?:-\d+)?-`)

// sessionIDFromPath strips known filename affixes to recover the bare
// session identifier, falling back to the raw filename.
func sessionIDFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	stripped := name
	for _, prefix := range []string{"rollout-", "session-", "agent-"} {
		stripped = strings.TrimPrefix(stripped, prefix)
	}
	stripped = sessionDatePrefix.ReplaceAllString(stripped, "")

	if stripped == "" {
		return name
	}
	return stripped
}
