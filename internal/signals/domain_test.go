package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craftlens/craftlens/internal/models"
)

func TestExtractDomainKeywords(t *testing.T) {
	sig := ExtractDomain([]models.TranscriptMessage{
		userMsg("deploy the docker image through the pipeline"),
	})
	assert.Equal(t, []string{"devops"}, sig.Domains)
}

func TestExtractDomainExtensions(t *testing.T) {
	msgs := []models.TranscriptMessage{
		toolCallWith("Read", map[string]any{"file_path": "web/app.tsx"}),
		toolCallWith("Edit", map[string]any{"path": "cmd/main.go"}),
	}

	sig := ExtractDomain(msgs)
	assert.Equal(t, []string{"backend", "frontend"}, sig.Domains)
}

func TestExtractDomainProjectTypePriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"debugging_wins_over_architecture", "refactor this later, but the crash comes first", "debugging"},
		{"testing", "please add tests for the queue", "testing"},
		{"greenfield", "start a new project from scratch", "greenfield"},
		{"maintenance", "bump the yaml dependency", "maintenance"},
		{"general", "summarize what this package does", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := ExtractDomain([]models.TranscriptMessage{userMsg(tt.text)})
			assert.Equal(t, tt.want, sig.ProjectType)
		})
	}
}

func TestExtractDomainSortedOutput(t *testing.T) {
	sig := ExtractDomain([]models.TranscriptMessage{
		userMsg("harden the oauth flow"),
		userMsg("the react component rerenders too often"),
		userMsg("tune the sql query"),
	})
	assert.Equal(t, []string{"data", "frontend", "security"}, sig.Domains)
}
