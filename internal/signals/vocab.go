// Package signals computes behavioral signals from normalized transcript
// messages. Every extractor is a pure function: no I/O, no shared state,
// deterministic for a given message sequence.
package signals

import "strings"

// Fixed vocabularies for the heuristic classifiers. Matching is
// case-insensitive substring matching throughout.

var contextVocabulary = []string{
	"must", "should", "need to", "required", "constraint",
	"don't", "do not", "avoid", "only", "ensure", "make sure",
}

var exampleVocabulary = []string{
	"for example", "for instance", "e.g.", "such as", "like this",
	"example:", "here's an example",
}

var failureVocabulary = []string{
	"error", "failed", "failure", "exception", "traceback",
	"panic:", "not found", "permission denied", "cannot", "fatal",
}

var debugVocabulary = []string{
	"debug", "log", "print", "check", "inspect", "trace",
	"verify", "reproduce", "narrow down", "isolate",
}

var decompositionVocabulary = []string{
	"first", "then", "next", "step", "phase", "finally",
	"after that", "break this down", "one at a time",
}

var delegationVocabulary = []string{
	"task", "agent", "delegate", "dispatch", "orchestrat",
	"subagent", "spawn", "worker",
}

func containsAny(text string, vocab []string) bool {
	lower := strings.ToLower(text)
	for _, term := range vocab {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
