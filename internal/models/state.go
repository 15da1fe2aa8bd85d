package models

import "time"

// QueuedReport is one entry in the bounded local retry queue.
type QueuedReport struct {
	Report   WorkReport `json:"report"`
	QueuedAt time.Time  `json:"queued_at"`
	Attempts int        `json:"attempts"`
}

// SubmittedRecord is one append-only audit entry for a submission attempt.
type SubmittedRecord struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	ReportID  string    `json:"report_id,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// ObservationSummary is a compact record of one analyzed session, kept in
// the rolling window of the observation store.
type ObservationSummary struct {
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	Source        string    `json:"source"`
	MessageCount  int       `json:"message_count"`
	ToolCallCount int       `json:"tool_call_count"`
}

// ObservationCounters accumulate across pipeline invocations.
type ObservationCounters struct {
	SessionsAnalyzed int `json:"sessions_analyzed"`
	ReportsSubmitted int `json:"reports_submitted"`
	ReportsQueued    int `json:"reports_queued"`
}

// ObservationStore is the persisted shape of the observation file.
type ObservationStore struct {
	Counters ObservationCounters  `json:"counters"`
	Recent   []ObservationSummary `json:"recent,omitempty"`
}
