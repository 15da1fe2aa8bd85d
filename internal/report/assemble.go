// Package report assembles WorkReports from extracted signals: one report
// per session, or an aggregate over many sessions.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/craftlens/craftlens/internal/models"
	"github.com/craftlens/craftlens/internal/scoring"
	"github.com/craftlens/craftlens/internal/signals"
)

// Analyze runs the five extractors over a parsed transcript and assembles
// a single-session WorkReport. The analysis is deterministic for a given
// transcript; now is the only stamped field.
func Analyze(t *models.ParsedTranscript, agentID string, now time.Time) *models.WorkReport {
	comm := signals.ExtractCommunication(t.Messages)
	orch := signals.ExtractOrchestration(t.Messages)
	prob := signals.ExtractProblemSolving(t.Messages)
	tool := signals.ExtractToolFluency(t.Messages)
	domain := signals.ExtractDomain(t.Messages)

	r := &models.WorkReport{
		AgentID:    agentID,
		SessionID:  t.SessionID,
		ReportType: models.ReportSessionAnalysis,
		Communication: models.DimensionScore{
			Score:    scoring.ScoreCommunication(comm),
			Evidence: communicationEvidence(comm),
			Pattern:  communicationPattern(comm),
		},
		Orchestration: models.OrchestrationDimension{
			DimensionScore: models.DimensionScore{
				Score:    scoring.ScoreOrchestration(orch),
				Evidence: orchestrationEvidence(orch),
				Pattern:  string(scoring.ClassifyComplexity(orch)),
			},
			Complexity: scoring.ClassifyComplexity(orch),
		},
		ProblemSolving: models.ProblemSolvingDimension{
			DimensionScore: models.DimensionScore{
				Score:    scoring.ScoreProblemSolving(prob),
				Evidence: problemSolvingEvidence(prob),
				Pattern:  string(scoring.ClassifyApproach(prob)),
			},
			Approach: scoring.ClassifyApproach(prob),
		},
		ToolFluency: models.ToolFluencyDimension{
			DimensionScore: models.DimensionScore{
				Score:    scoring.ScoreToolFluency(tool),
				Evidence: toolFluencyEvidence(tool),
				Pattern:  toolFluencyPattern(tool),
			},
			ToolsUsed:  toolNames(tool),
			ToolDepths: toolDepths(tool),
		},
		Domain: models.DomainDimension{
			DimensionScore: models.DimensionScore{
				Score:    scoring.ScoreDomain(domain),
				Evidence: domainEvidence(domain),
				Pattern:  domain.ProjectType,
			},
			Domains:     domain.Domains,
			ProjectType: domain.ProjectType,
		},
		Metrics:        computeMetrics(t, orch),
		ProjectContext: projectContext(domain),
		Period: models.ObservationPeriod{
			Start:        t.StartTime,
			End:          t.EndTime,
			SessionCount: 1,
			Scope:        ScopeSingleSession,
		},
		GeneratedAt: now,
	}

	r.Narrative = BuildNarrative(r)
	return r
}

// computeMetrics totals token usage and derives the session duration.
// An unparseable or inverted time window yields a zero duration.
func computeMetrics(t *models.ParsedTranscript, orch models.OrchestrationSignals) models.SessionMetrics {
	m := models.SessionMetrics{
		MessageCount:  len(t.Messages),
		ToolCallCount: orch.ToolCallCount,
	}
	for _, msg := range t.Messages {
		m.TokensIn += msg.TokenUsage.Input
		m.TokensOut += msg.TokenUsage.Output
	}
	if !t.StartTime.IsZero() && !t.EndTime.IsZero() {
		if minutes := t.EndTime.Sub(t.StartTime).Minutes(); minutes > 0 {
			m.DurationMinutes = minutes
		}
	}
	return m
}

func projectContext(sig models.DomainSignals) string {
	if len(sig.Domains) == 0 {
		return fmt.Sprintf("%s work", sig.ProjectType)
	}
	return fmt.Sprintf("%s work touching %s", sig.ProjectType, joinList(sig.Domains))
}

func communicationEvidence(sig models.CommunicationSignals) []string {
	if sig.UserMessageCount == 0 {
		return nil
	}
	ev := []string{
		fmt.Sprintf("%d user messages, average length %.0f characters", sig.UserMessageCount, sig.AvgMessageLength),
	}
	if sig.StructuredCount > 0 {
		ev = append(ev, fmt.Sprintf("Structured formatting in %d of %d messages", sig.StructuredCount, sig.UserMessageCount))
	}
	if sig.ContextCount > 0 {
		ev = append(ev, fmt.Sprintf("Stated constraints or context in %d messages", sig.ContextCount))
	}
	if sig.ExampleCount > 0 {
		ev = append(ev, fmt.Sprintf("Provided examples in %d messages", sig.ExampleCount))
	}
	return ev
}

func communicationPattern(sig models.CommunicationSignals) string {
	switch {
	case sig.StructuredCount > 0 && sig.ContextCount > 0:
		return "structured_with_context"
	case sig.StructuredCount > 0:
		return "structured"
	case sig.ContextCount > 0:
		return "context_providing"
	default:
		return "conversational"
	}
}

func orchestrationEvidence(sig models.OrchestrationSignals) []string {
	var ev []string
	if sig.ToolCallCount > 0 {
		ev = append(ev, fmt.Sprintf("%d tool calls across %d sequences, longest %d", sig.ToolCallCount, sig.SequenceCount, sig.LongestSequence))
	}
	if sig.ThinkingBlocks > 0 {
		ev = append(ev, fmt.Sprintf("%d extended thinking blocks", sig.ThinkingBlocks))
	}
	if sig.ParallelUse {
		ev = append(ev, "Parallel use of multiple tools within one sequence")
	}
	if sig.MultiAgent {
		ev = append(ev, "Delegated work to sub-agent tooling")
	}
	return ev
}

func problemSolvingEvidence(sig models.ProblemSolvingSignals) []string {
	var ev []string
	if sig.ErrorRetryPairs > 0 {
		ev = append(ev, fmt.Sprintf("Recovered from %d tool errors", sig.ErrorRetryPairs))
	}
	if sig.SystematicRetries > 0 {
		ev = append(ev, fmt.Sprintf("Systematic debugging in %d retries", sig.SystematicRetries))
	}
	if sig.IterationRounds > 0 {
		ev = append(ev, fmt.Sprintf("Iterated across %d rounds", sig.IterationRounds))
	}
	if sig.Decomposition {
		ev = append(ev, "Decomposed the task into explicit steps")
	}
	return ev
}

func toolFluencyEvidence(sig models.ToolFluencySignals) []string {
	if len(sig.Tools) == 0 {
		return nil
	}
	ev := []string{
		fmt.Sprintf("Used %d distinct tools across %d calls", len(sig.Tools), sig.TotalCalls),
	}
	for _, t := range sig.Tools {
		if t.Depth == models.ToolDepthAdvanced {
			ev = append(ev, fmt.Sprintf("Advanced usage of %s (%s)", t.Name, joinList(t.Features)))
		}
	}
	return ev
}

func toolFluencyPattern(sig models.ToolFluencySignals) string {
	for _, t := range sig.Tools {
		if t.Depth == models.ToolDepthAdvanced {
			return "advanced"
		}
	}
	if len(sig.Tools) > 0 {
		return "working"
	}
	return "minimal"
}

func domainEvidence(sig models.DomainSignals) []string {
	var ev []string
	if len(sig.Domains) > 0 {
		ev = append(ev, fmt.Sprintf("Worked across %s", joinList(sig.Domains)))
	}
	ev = append(ev, fmt.Sprintf("Project type: %s", sig.ProjectType))
	return ev
}

func toolNames(sig models.ToolFluencySignals) []string {
	names := make([]string, 0, len(sig.Tools))
	for _, t := range sig.Tools {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func toolDepths(sig models.ToolFluencySignals) map[string]models.ToolDepth {
	if len(sig.Tools) == 0 {
		return nil
	}
	depths := make(map[string]models.ToolDepth, len(sig.Tools))
	for _, t := range sig.Tools {
		depths[t.Name] = t.Depth
	}
	return depths
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		out := items[0]
		for _, s := range items[1 : len(items)-1] {
			out += ", " + s
		}
		return out + " and " + items[len(items)-1]
	}
}
