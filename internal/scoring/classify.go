package scoring

import "github.com/craftlens/craftlens/internal/models"

// complexityRank orders complexity classes for aggregation; higher wins.
var complexityRank = map[models.Complexity]int{
	models.ComplexitySinglePrompt: 0,
	models.ComplexityIterative:    1,
	models.ComplexityMultiTool:    2,
	models.ComplexityPipeline:     3,
	models.ComplexityMultiAgent:   4,
}

// ComplexityRank returns the aggregation rank of a complexity class.
func ComplexityRank(c models.Complexity) int {
	return complexityRank[c]
}

// ClassifyComplexity applies the ordered decision list for orchestration
// complexity. The first matching rule wins.
func ClassifyComplexity(sig models.OrchestrationSignals) models.Complexity {
	switch {
	case sig.MultiAgent:
		return models.ComplexityMultiAgent
	case sig.LongestSequence >= 5 && sig.ParallelUse:
		return models.ComplexityPipeline
	case sig.LongestSequence >= 3:
		return models.ComplexityMultiTool
	case sig.SequenceCount >= 2:
		return models.ComplexityIterative
	default:
		return models.ComplexitySinglePrompt
	}
}

// Thresholds for the approach decision list.
const (
	trialAndErrorRetries      = 3
	iterativeRefinementRounds = 4
)

// ClassifyApproach applies the ordered decision list for problem-solving
// approach. The first matching rule wins.
func ClassifyApproach(sig models.ProblemSolvingSignals) models.Approach {
	switch {
	case sig.Decomposition && sig.SystematicRetries > 0:
		return models.ApproachSystematicDecomposition
	case sig.SystematicRetries > 0:
		return models.ApproachSystematicDebugging
	case sig.Decomposition:
		return models.ApproachDecomposition
	case sig.ErrorRetryPairs >= trialAndErrorRetries:
		return models.ApproachTrialAndError
	case sig.IterationRounds >= iterativeRefinementRounds:
		return models.ApproachIterativeRefinement
	default:
		return models.ApproachDirect
	}
}
