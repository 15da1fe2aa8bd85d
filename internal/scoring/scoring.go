// Package scoring converts extracted signals into dimension scores.
// Every score starts from a fixed baseline and adds capped, non-negative
// contributions, so more corroborating evidence never lowers a score.
package scoring

import "github.com/craftlens/craftlens/internal/models"

// Baselines for the five dimensions. Fixed heuristic constants.
const (
	communicationBaseline  = 40
	orchestrationBaseline  = 35
	problemSolvingBaseline = 40
	toolFluencyBaseline    = 35
	domainBaseline         = 45
)

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// capped returns count*perUnit limited to limit, never negative.
func capped(count, perUnit, limit int) int {
	v := count * perUnit
	if v > limit {
		return limit
	}
	if v < 0 {
		return 0
	}
	return v
}

// ScoreCommunication scores message clarity and context-setting.
func ScoreCommunication(sig models.CommunicationSignals) int {
	score := communicationBaseline
	score += capped(sig.StructuredCount, 5, 20)
	score += capped(sig.ContextCount, 3, 15)
	score += capped(sig.ExampleCount, 5, 10)
	switch {
	case sig.AvgMessageLength >= 200:
		score += 10
	case sig.AvgMessageLength >= 80:
		score += 5
	}
	return clamp(score)
}

// ScoreOrchestration scores tool-chain sophistication.
func ScoreOrchestration(sig models.OrchestrationSignals) int {
	score := orchestrationBaseline
	score += capped(sig.LongestSequence, 4, 20)
	score += capped(sig.SequenceCount, 2, 10)
	score += capped(sig.ThinkingBlocks, 2, 10)
	if sig.ParallelUse {
		score += 10
	}
	if sig.MultiAgent {
		score += 15
	}
	return clamp(score)
}

// ScoreProblemSolving scores recovery and iteration behavior. The
// refinement-depth ratio is deliberately not an input: it shrinks as
// error-retry pairs grow, which would let extra evidence lower the score.
func ScoreProblemSolving(sig models.ProblemSolvingSignals) int {
	score := problemSolvingBaseline
	score += capped(sig.ErrorRetryPairs, 5, 15)
	score += capped(sig.IterationRounds, 3, 25)
	if sig.SystematicRetries > 0 {
		score += 10
	}
	if sig.Decomposition {
		score += 10
	}
	return clamp(score)
}

// ScoreToolFluency scores breadth and depth of tool usage.
func ScoreToolFluency(sig models.ToolFluencySignals) int {
	score := toolFluencyBaseline
	advanced := 0
	featureTotal := 0
	for _, t := range sig.Tools {
		if t.Depth == models.ToolDepthAdvanced {
			advanced++
		}
		featureTotal += len(t.Features)
	}
	score += capped(len(sig.Tools), 5, 20)
	score += capped(advanced, 7, 20)
	score += capped(featureTotal, 2, 10)
	score += capped(sig.TotalCalls, 1, 10)
	return clamp(score)
}

// ScoreDomain scores domain breadth and clarity of project intent.
func ScoreDomain(sig models.DomainSignals) int {
	score := domainBaseline
	score += capped(len(sig.Domains), 8, 25)
	if sig.ProjectType != "" && sig.ProjectType != "general" {
		score += 10
	}
	return clamp(score)
}
