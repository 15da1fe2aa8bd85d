package signals

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/craftlens/craftlens/internal/models"
)

// Fixed keyword and extension tables mapping session content to domain
// categories. Eight categories total.
var domainKeywords = map[string][]string{
	"frontend": {"react", "vue", "css", "component", "browser", "dom", "ui "},
	"backend":  {"api", "endpoint", "server", "middleware", "handler", "microservice"},
	"devops":   {"docker", "kubernetes", "terraform", "ci/cd", "pipeline", "deploy"},
	"data":     {"sql", "etl", "dataframe", "warehouse", "query", "migration"},
	"ml":       {"model", "training", "inference", "embedding", "neural", "dataset"},
	"mobile":   {"android", "ios", "swift", "kotlin", "flutter", "react native"},
	"security": {"vulnerability", "auth", "encryption", "cve", "pentest", "oauth"},
	"testing":  {"unit test", "integration test", "coverage", "mock", "fixture", "assertion"},
}

var extensionDomains = map[string]string{
	".tsx": "frontend", ".jsx": "frontend", ".css": "frontend", ".html": "frontend",
	".go": "backend", ".java": "backend", ".rb": "backend", ".rs": "backend",
	".tf": "devops", ".dockerfile": "devops",
	".sql": "data", ".parquet": "data",
	".ipynb": "ml",
	".swift": "mobile", ".kt": "mobile", ".dart": "mobile",
}

// Project-type inference runs over the whole transcript text in a fixed
// priority order; the first type whose vocabulary matches wins.
var projectTypePriority = []struct {
	name  string
	terms []string
}{
	{"debugging", []string{"bug", "fix", "broken", "regression", "doesn't work", "crash"}},
	{"testing", []string{"write tests", "add tests", "test coverage", "failing test"}},
	{"architecture", []string{"architecture", "redesign", "refactor", "restructure", "design doc"}},
	{"greenfield", []string{"new project", "from scratch", "scaffold", "initialize", "boilerplate"}},
	{"maintenance", []string{"upgrade", "update dependency", "bump", "rename", "cleanup", "chore"}},
}

// ExtractDomain scans message text and tool-input file paths against the
// fixed domain tables and infers a project type for the session.
func ExtractDomain(messages []models.TranscriptMessage) models.DomainSignals {
	matched := map[string]bool{}
	var transcript strings.Builder

	for _, msg := range messages {
		if msg.Text != "" {
			transcript.WriteString(strings.ToLower(msg.Text))
			transcript.WriteByte('\n')
			for domain, terms := range domainKeywords {
				if containsAny(msg.Text, terms) {
					matched[domain] = true
				}
			}
		}
		if path := inputFilePath(msg.ToolInput); path != "" {
			ext := strings.ToLower(filepath.Ext(path))
			if domain, ok := extensionDomains[ext]; ok {
				matched[domain] = true
			}
		}
	}

	sig := models.DomainSignals{ProjectType: inferProjectType(transcript.String())}
	for domain := range matched {
		sig.Domains = append(sig.Domains, domain)
	}
	sort.Strings(sig.Domains)
	return sig
}

func inferProjectType(transcript string) string {
	for _, pt := range projectTypePriority {
		if containsAny(transcript, pt.terms) {
			return pt.name
		}
	}
	return "general"
}

// inputFilePath pulls a file path out of a tool input map under the common
// parameter spellings.
func inputFilePath(input map[string]any) string {
	for _, key := range []string{"file_path", "filePath", "path", "file", "notebook_path"} {
		if v, ok := input[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}
