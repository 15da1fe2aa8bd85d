package signals

import "github.com/craftlens/craftlens/internal/models"

// ExtractOrchestration walks the message sequence maintaining a running
// tool-call sequence that flushes at every user message (a turn boundary).
func ExtractOrchestration(messages []models.TranscriptMessage) models.OrchestrationSignals {
	var sig models.OrchestrationSignals

	var current []string
	distinct := map[string]bool{}

	flush := func() {
		if len(current) == 0 {
			return
		}
		sig.SequenceCount++
		if len(current) > sig.LongestSequence {
			sig.LongestSequence = len(current)
		}
		if len(current) >= 3 && distinctCount(current) >= 2 {
			sig.ParallelUse = true
		}
		current = nil
	}

	for _, msg := range messages {
		if msg.IsThinking {
			sig.ThinkingBlocks++
			continue
		}
		if msg.Role == models.RoleUser {
			flush()
			continue
		}
		if msg.IsToolCall() {
			sig.ToolCallCount++
			current = append(current, msg.ToolName)
			distinct[msg.ToolName] = true
			if containsAny(msg.ToolName, delegationVocabulary) {
				sig.MultiAgent = true
			}
		}
	}
	flush()

	sig.DistinctTools = len(distinct)
	return sig
}

func distinctCount(names []string) int {
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	return len(seen)
}
