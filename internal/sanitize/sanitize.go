// Package sanitize redacts personally identifiable content from a report
// copy immediately before transmission. Ambiguity resolves fail-safe: a
// false positive only removes text, it never blocks submission.
package sanitize

import (
	"regexp"

	"github.com/craftlens/craftlens/internal/models"
)

// Marker replaces redacted content.
const Marker = "[REDACTED]"

// Fixed pattern set. Secret-key prefixes cover the common API token
// families; the government ID pattern matches US SSN formatting.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`),
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	regexp.MustCompile(`\b(sk-[A-Za-z0-9_-]{10,}|ghp_[A-Za-z0-9]{10,}|github_pat_[A-Za-z0-9_]{10,}|AKIA[0-9A-Z]{10,}|xox[a-z]-[A-Za-z0-9-]{10,}|AIza[A-Za-z0-9_-]{10,})`),
}

func matchesAny(s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// Report returns a sanitized shallow copy of a WorkReport. The narrative
// is replaced wholesale on any match, avoiding leakage from adjacent
// context; evidence entries are redacted individually.
func Report(r *models.WorkReport) *models.WorkReport {
	clean := *r

	if matchesAny(clean.Narrative) {
		clean.Narrative = Marker
	}
	if matchesAny(clean.ProjectContext) {
		clean.ProjectContext = Marker
	}

	clean.Communication.Evidence = redactEntries(clean.Communication.Evidence)
	clean.Orchestration.Evidence = redactEntries(clean.Orchestration.Evidence)
	clean.ProblemSolving.Evidence = redactEntries(clean.ProblemSolving.Evidence)
	clean.ToolFluency.Evidence = redactEntries(clean.ToolFluency.Evidence)
	clean.Domain.Evidence = redactEntries(clean.Domain.Evidence)

	return &clean
}

// redactEntries replaces matching entries with the marker, leaving
// siblings untouched. The slice is copied so the original report is
// never mutated.
func redactEntries(entries []string) []string {
	if len(entries) == 0 {
		return entries
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		if matchesAny(e) {
			out[i] = Marker
		} else {
			out[i] = e
		}
	}
	return out
}
