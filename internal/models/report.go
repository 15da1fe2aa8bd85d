package models

import "time"

// ReportType distinguishes single-session reports from aggregates.
type ReportType string

const (
	ReportSessionAnalysis    ReportType = "session_analysis"
	ReportPeriodicSummary    ReportType = "periodic_summary"
	ReportHistoricalAnalysis ReportType = "historical_analysis"
)

// Complexity classifies how the user orchestrated tools, from a fixed
// ordered decision list. Higher values subsume lower ones.
type Complexity string

const (
	ComplexitySinglePrompt Complexity = "single_prompt"
	ComplexityIterative    Complexity = "iterative"
	ComplexityMultiTool    Complexity = "multi_tool"
	ComplexityPipeline     Complexity = "pipeline"
	ComplexityMultiAgent   Complexity = "multi_agent"
)

// Approach classifies the user's problem-solving style.
type Approach string

const (
	ApproachDirect                  Approach = "direct"
	ApproachIterativeRefinement     Approach = "iterative_refinement"
	ApproachTrialAndError           Approach = "trial_and_error"
	ApproachDecomposition           Approach = "decomposition"
	ApproachSystematicDebugging     Approach = "systematic_debugging"
	ApproachSystematicDecomposition Approach = "systematic_decomposition"
)

// DimensionScore is the shared shape of all five scored dimensions.
// Score is always clamped to [0,100]. Evidence holds generated
// descriptions, never raw user content.
type DimensionScore struct {
	Score    int      `json:"score"`
	Evidence []string `json:"evidence,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
}

// OrchestrationDimension extends the base score with the complexity class.
type OrchestrationDimension struct {
	DimensionScore
	Complexity Complexity `json:"complexity"`
}

// ProblemSolvingDimension extends the base score with the approach class.
type ProblemSolvingDimension struct {
	DimensionScore
	Approach Approach `json:"approach"`
}

// ToolFluencyDimension extends the base score with the observed tool set.
type ToolFluencyDimension struct {
	DimensionScore
	ToolsUsed  []string             `json:"tools_used,omitempty"`
	ToolDepths map[string]ToolDepth `json:"tool_depths,omitempty"`
}

// DomainDimension extends the base score with domain and project context.
type DomainDimension struct {
	DimensionScore
	Domains     []string `json:"domains,omitempty"`
	ProjectType string   `json:"project_type,omitempty"`
}

// SessionMetrics holds the quantitative side of a report.
type SessionMetrics struct {
	TokensIn        int     `json:"tokens_in"`
	TokensOut       int     `json:"tokens_out"`
	DurationMinutes float64 `json:"duration_minutes"`
	MessageCount    int     `json:"message_count"`
	ToolCallCount   int     `json:"tool_call_count"`
}

// ObservationPeriod describes the time window a report covers.
type ObservationPeriod struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	SessionCount int       `json:"session_count"`
	Scope        string    `json:"scope"` // single_session, daily, weekly, monthly
}

// WorkReport is the durable proficiency artifact produced by the pipeline
// and submitted to the remote service after sanitization.
type WorkReport struct {
	AgentID        string                  `json:"agent_id"`
	SessionID      string                  `json:"session_id"`
	ReportType     ReportType              `json:"report_type"`
	Communication  DimensionScore          `json:"communication"`
	Orchestration  OrchestrationDimension  `json:"orchestration"`
	ProblemSolving ProblemSolvingDimension `json:"problem_solving"`
	ToolFluency    ToolFluencyDimension    `json:"tool_fluency"`
	Domain         DomainDimension         `json:"domain"`
	Metrics        SessionMetrics          `json:"metrics"`
	ProjectContext string                  `json:"project_context,omitempty"`
	Period         ObservationPeriod       `json:"period"`
	Narrative      string                  `json:"narrative,omitempty"`
	GeneratedAt    time.Time               `json:"generated_at"`
}
