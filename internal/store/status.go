package store

import "time"

// Status is the side-channel file carrying version-advisory metadata from
// submission responses. It is consumed by the update surface, not by the
// pipeline itself.
type Status struct {
	LatestVersion string    `json:"latest_version,omitempty"`
	Message       string    `json:"message,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}

// WriteStatus rewrites the status file.
func (l *Local) WriteStatus(s Status) {
	l.writeJSON(statusFile, s)
}

// LoadStatus reads the status file; ok is false when absent or corrupt.
func (l *Local) LoadStatus() (Status, bool) {
	var s Status
	ok := l.readJSON(statusFile, &s)
	return s, ok
}
