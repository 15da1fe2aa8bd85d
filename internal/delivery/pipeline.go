package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/craftlens/craftlens/internal/config"
	"github.com/craftlens/craftlens/internal/models"
	"github.com/craftlens/craftlens/internal/sanitize"
	"github.com/craftlens/craftlens/internal/store"
)

// maxRetryAttempts bounds the retry budget; an item whose attempt counter
// reaches this after another transient failure is dropped for good.
const maxRetryAttempts = 5

// Pipeline wires the submission client to the local queue, audit log, and
// status file. Local persistence is best-effort throughout.
type Pipeline struct {
	cfg    *config.Config
	client *Client
	local  *store.Local
	now    func() time.Time
}

// NewPipeline builds a delivery pipeline. version is the client version
// advertised on submissions.
func NewPipeline(cfg *config.Config, local *store.Local, version string) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		client: NewClient(cfg.BaseURL(), cfg.APIToken, version),
		local:  local,
		now:    time.Now,
	}
}

// Submit sanitizes and delivers one report. Missing credentials return
// StatusNotAuthenticated silently: no network call, no queuing, no audit.
// Transient failures queue the sanitized report for a later pass.
func (p *Pipeline) Submit(ctx context.Context, report *models.WorkReport) Result {
	if !p.cfg.Authenticated() {
		return Result{Status: StatusNotAuthenticated}
	}

	clean := sanitize.Report(report)
	result := p.client.Submit(ctx, clean)

	switch result.Status {
	case StatusAccepted:
		p.recordSuccess(clean, result)
	case StatusRetryable:
		p.local.Enqueue(*clean, p.now())
		p.local.BumpQueued()
		p.audit(clean.SessionID, "", false, fmt.Sprintf("queued: %v", result.Err))
		slog.Debug("report queued for retry", "session", clean.SessionID, "error", result.Err)
	case StatusTerminal:
		p.audit(clean.SessionID, "", false, result.Err.Error())
		slog.Debug("report rejected", "session", clean.SessionID, "error", result.Err)
	}

	return result
}

// RetryQueued resubmits every queued report through the same submission
// path and rewrites the queue with exactly the still-pending items.
func (p *Pipeline) RetryQueued(ctx context.Context) (delivered, pending int) {
	if !p.cfg.Authenticated() {
		return 0, len(p.local.LoadQueue())
	}

	queue := p.local.LoadQueue()
	if len(queue) == 0 {
		return 0, 0
	}

	var remaining []models.QueuedReport
	for _, item := range queue {
		item.Attempts++

		result := p.client.Submit(ctx, &item.Report)
		switch result.Status {
		case StatusAccepted:
			p.recordSuccess(&item.Report, result)
			delivered++
		case StatusTerminal:
			p.audit(item.Report.SessionID, "", false, result.Err.Error())
		case StatusRetryable:
			if item.Attempts >= maxRetryAttempts {
				p.audit(item.Report.SessionID, "", false,
					fmt.Sprintf("permanently failed after %d attempts: %v", item.Attempts, result.Err))
				slog.Debug("report dropped after retry budget", "session", item.Report.SessionID)
				continue
			}
			remaining = append(remaining, item)
		}
	}

	p.local.SaveQueue(remaining)
	return delivered, len(remaining)
}

func (p *Pipeline) recordSuccess(report *models.WorkReport, result Result) {
	p.local.BumpSubmitted()
	reportID := result.ReportID
	if reportID == "" {
		// Older server versions omit the ID; mint one locally so the
		// audit log stays correlatable.
		reportID = uuid.NewString()
	}
	p.audit(report.SessionID, reportID, true, "")
	if result.Advisory != nil {
		p.local.WriteStatus(store.Status{
			LatestVersion: result.Advisory.LatestVersion,
			Message:       result.Advisory.Message,
			CheckedAt:     p.now(),
		})
	}
}

func (p *Pipeline) audit(sessionID, reportID string, success bool, errMsg string) {
	p.local.AppendAudit(models.SubmittedRecord{
		Timestamp: p.now(),
		SessionID: sessionID,
		ReportID:  reportID,
		Success:   success,
		Error:     errMsg,
	})
}
