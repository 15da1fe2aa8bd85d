package signals

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/craftlens/craftlens/internal/models"
)

// ExtractCommunication computes communication signals over the user
// messages of a session. Assistant, system, and tool messages are ignored.
func ExtractCommunication(messages []models.TranscriptMessage) models.CommunicationSignals {
	var sig models.CommunicationSignals
	totalLength := 0

	for _, msg := range messages {
		if msg.Role != models.RoleUser || msg.Text == "" {
			continue
		}

		sig.UserMessageCount++
		length := len(msg.Text)
		totalLength += length
		if length > sig.MaxMessageLength {
			sig.MaxMessageLength = length
		}

		structured, fenced := inspectStructure(msg.Text)
		if structured {
			sig.StructuredCount++
		}
		if containsAny(msg.Text, contextVocabulary) {
			sig.ContextCount++
		}
		if fenced || containsAny(msg.Text, exampleVocabulary) {
			sig.ExampleCount++
		}
	}

	if sig.UserMessageCount > 0 {
		sig.AvgMessageLength = float64(totalLength) / float64(sig.UserMessageCount)
	}
	return sig
}

// inspectStructure parses a message as markdown and reports whether it
// carries structural formatting (headings, lists, fenced code blocks) and
// whether a fenced block is present at all.
func inspectStructure(text string) (structured, fenced bool) {
	source := []byte(text)
	md := goldmark.New()
	doc := md.Parser().Parse(gmtext.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading, *ast.List:
			structured = true
		case *ast.FencedCodeBlock:
			structured = true
			fenced = true
		}
		return ast.WalkContinue, nil
	})

	// Bullet characters on short lines inside a single paragraph can be
	// missed by the markdown parser. Check line prefixes as a fallback.
	if !structured {
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
				structured = true
				break
			}
		}
	}

	return structured, fenced
}
