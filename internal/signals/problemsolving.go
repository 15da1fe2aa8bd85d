package signals

import "github.com/craftlens/craftlens/internal/models"

// refinementDepthCap bounds the rounds-per-error ratio so a long error-free
// session cannot dominate the problem-solving score.
const refinementDepthCap = 20

// ExtractProblemSolving scans the sequence tracking error-and-retry cycles.
// A tool-role message that looks like a failure sets a pending-error flag;
// the next user message clears it and counts as one error-retry pair.
func ExtractProblemSolving(messages []models.TranscriptMessage) models.ProblemSolvingSignals {
	var sig models.ProblemSolvingSignals

	errorPending := false
	userMessages := 0

	for _, msg := range messages {
		switch {
		case msg.Role == models.RoleTool:
			if msg.IsError || containsAny(msg.ToolResult, failureVocabulary) {
				errorPending = true
			}
		case msg.Role == models.RoleUser:
			userMessages++
			if errorPending {
				errorPending = false
				sig.ErrorRetryPairs++
				if containsAny(msg.Text, debugVocabulary) {
					sig.SystematicRetries++
				}
			}
			if containsAny(msg.Text, decompositionVocabulary) {
				sig.Decomposition = true
			}
		}
	}

	if userMessages > 1 {
		sig.IterationRounds = userMessages - 1
	}

	divisor := sig.ErrorRetryPairs
	if divisor < 1 {
		divisor = 1
	}
	sig.RefinementDepth = float64(sig.IterationRounds) / float64(divisor)
	if sig.RefinementDepth > refinementDepthCap {
		sig.RefinementDepth = refinementDepthCap
	}

	return sig
}
