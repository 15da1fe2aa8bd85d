package report

import (
	"fmt"
	"strings"

	"github.com/craftlens/craftlens/internal/models"
)

// BuildNarrative renders a plain-language summary of a report in a fixed
// section order: overview, communication, orchestration, problem solving,
// tooling, domains. It only describes derived signals, never quotes
// transcript content.
func BuildNarrative(r *models.WorkReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session covered %s over %d messages.",
		r.ProjectContext, r.Metrics.MessageCount)

	fmt.Fprintf(&b, " Communication was %s (%d/100).",
		describeScore(r.Communication.Score), r.Communication.Score)

	fmt.Fprintf(&b, " Tool orchestration rated %s with %s complexity.",
		describeScore(r.Orchestration.Score), strings.ReplaceAll(string(r.Orchestration.Complexity), "_", " "))

	fmt.Fprintf(&b, " Problem solving followed a %s approach (%d/100).",
		strings.ReplaceAll(string(r.ProblemSolving.Approach), "_", " "), r.ProblemSolving.Score)

	if len(r.ToolFluency.ToolsUsed) > 0 {
		fmt.Fprintf(&b, " Worked with %d tools over %d calls.",
			len(r.ToolFluency.ToolsUsed), r.Metrics.ToolCallCount)
	} else {
		b.WriteString(" No tool usage observed.")
	}

	if len(r.Domain.Domains) > 0 {
		fmt.Fprintf(&b, " Domains touched: %s.", strings.Join(r.Domain.Domains, ", "))
	}

	return b.String()
}

func describeScore(score int) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "strong"
	case score >= 50:
		return "solid"
	default:
		return "developing"
	}
}
