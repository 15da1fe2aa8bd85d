// Package store is the single local-store abstraction over all file-backed
// pipeline state: the retry queue, the submission audit log, the
// observation store, the status file, and the plain-text error log.
//
// Every write is best-effort. A failed write degrades observation fidelity
// but must never disrupt the monitored workflow, so errors are logged to
// the error log and swallowed; error-log failures are swallowed silently.
// Whole-file rewrites are guarded by an advisory flock, which hardens but
// does not fully serialize concurrent invocations.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// File names under the state directory.
const (
	queueFile        = "queue.json"
	auditFile        = "audit.json"
	observationsFile = "observations.json"
	statusFile       = "status.json"
	errorLogFile     = "errors.log"
	lockFile         = ".state.lock"
)

// Capacity bounds for the rolling stores.
const (
	QueueCap       = 50
	AuditCap       = 200
	ObservationCap = 500
)

// Local provides access to the pipeline's persisted state directory.
type Local struct {
	dir  string
	lock *flock.Flock
}

// Open returns a Local rooted at dir, creating it if needed. Creation
// failure is tolerated; subsequent operations degrade to no-ops.
func Open(dir string) *Local {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Debug("state dir unavailable", "dir", dir, "error", err)
	}
	return &Local{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFile)),
	}
}

// Dir returns the state directory path.
func (l *Local) Dir() string { return l.dir }

// readJSON loads a JSON state file into v. A missing or corrupt file
// reports false, leaving v untouched or partially decoded.
func (l *Local) readJSON(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		l.LogError("decode "+name, err)
		return false
	}
	return true
}

// writeJSON rewrites a JSON state file in full under the advisory lock.
// All failures are logged best-effort and swallowed.
func (l *Local) writeJSON(name string, v any) {
	locked, err := l.lock.TryLock()
	if err == nil && locked {
		defer func() { _ = l.lock.Unlock() }()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		l.LogError("encode "+name, err)
		return
	}
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		l.LogError("write "+name, err)
	}
}

// LogError appends one timestamped line to the plain-text error log.
// A failed log write is swallowed; this path must never propagate.
func (l *Local) LogError(context string, err error) {
	if err == nil {
		return
	}
	f, openErr := os.OpenFile(filepath.Join(l.dir, errorLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if openErr != nil {
		return
	}
	defer f.Close()
	line := fmt.Sprintf("%s %s: %v\n", time.Now().UTC().Format(time.RFC3339), context, err)
	_, _ = f.WriteString(line)
}
