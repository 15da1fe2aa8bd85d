package models

// CommunicationSignals summarizes how the user communicated across a session.
// Counts are aggregated over user messages only.
type CommunicationSignals struct {
	UserMessageCount int
	AvgMessageLength float64
	MaxMessageLength int
	StructuredCount  int // messages with headings, lists, or fenced blocks
	ContextCount     int // messages carrying constraint vocabulary
	ExampleCount     int // messages carrying examples or fenced blocks
}

// OrchestrationSignals captures how the user drove tool usage within a session.
type OrchestrationSignals struct {
	ToolCallCount   int
	ThinkingBlocks  int
	SequenceCount   int // tool-call runs flushed at user-turn boundaries
	LongestSequence int
	ParallelUse     bool // a run of >=3 calls spanning >=2 distinct tools
	MultiAgent      bool // any tool name matching delegation vocabulary
	DistinctTools   int
}

// ProblemSolvingSignals captures error-recovery and iteration behavior.
type ProblemSolvingSignals struct {
	ErrorRetryPairs   int
	SystematicRetries int // retry pairs whose user message used debugging vocabulary
	IterationRounds   int // user messages after the first
	Decomposition     bool
	RefinementDepth   float64 // rounds / max(1, pairs), capped at 20
}

// ToolDepth rates how deeply a single tool was exercised.
type ToolDepth string

const (
	ToolDepthBasic        ToolDepth = "basic"
	ToolDepthIntermediate ToolDepth = "intermediate"
	ToolDepthAdvanced     ToolDepth = "advanced"
)

// ToolUsage is the per-tool portion of the fluency signals.
type ToolUsage struct {
	Name     string
	Count    int
	Features []string
	Depth    ToolDepth
}

// ToolFluencySignals summarizes tool usage breadth and depth.
type ToolFluencySignals struct {
	Tools      []ToolUsage // sorted by name for deterministic output
	TotalCalls int
}

// DomainSignals captures what the session was about.
type DomainSignals struct {
	Domains     []string
	ProjectType string
}
