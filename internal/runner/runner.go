// Package runner drives one pipeline invocation: discover transcripts,
// analyze them, and deliver the resulting reports. Each invocation is a
// short-lived, single-threaded batch; retries of previously queued
// reports ride along at the start of every run.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/craftlens/craftlens/internal/config"
	"github.com/craftlens/craftlens/internal/delivery"
	"github.com/craftlens/craftlens/internal/models"
	"github.com/craftlens/craftlens/internal/report"
	"github.com/craftlens/craftlens/internal/store"
	"github.com/craftlens/craftlens/internal/transcripts"
)

// Options configures one pipeline invocation.
type Options struct {
	StateDir string
	Since    time.Time
	MaxFiles int

	// Aggregate combines all discovered sessions into one summary report
	// instead of submitting per-session reports.
	Aggregate bool

	// Roots overrides transcript discovery locations; nil uses the
	// per-tool defaults.
	Roots []transcripts.SourceRoot

	// Version is the client version advertised on submissions.
	Version string
}

// Summary describes what one invocation did.
type Summary struct {
	Discovered int
	Analyzed   int
	Submitted  int
	Queued     int
	Retried    int
}

// Run executes a full discovery-driven pipeline pass.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	cfg, err := config.Load(opts.StateDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if !cfg.AnalysisEnabled() {
		slog.Debug("analysis disabled, skipping run")
		return summary, nil
	}

	local := store.Open(opts.StateDir)
	pipeline := delivery.NewPipeline(cfg, local, opts.Version)

	// Drain previously queued reports first; natural session cadence is
	// the backoff between passes.
	delivered, _ := pipeline.RetryQueued(ctx)
	summary.Retried = delivered

	roots := opts.Roots
	if roots == nil {
		roots = transcripts.DefaultRoots()
	}
	files := transcripts.Discover(roots, opts.Since, opts.MaxFiles)
	summary.Discovered = len(files)

	now := time.Now().UTC()
	var reports []models.WorkReport

	for _, file := range files {
		parsed := transcripts.Parse(file.Path, file.Source)
		if parsed == nil || len(parsed.Messages) == 0 {
			continue
		}
		summary.Analyzed++

		r := report.Analyze(parsed, cfg.Agent(), now)
		local.RecordObservation(models.ObservationSummary{
			Timestamp:     now,
			SessionID:     parsed.SessionID,
			Source:        parsed.Source,
			MessageCount:  r.Metrics.MessageCount,
			ToolCallCount: r.Metrics.ToolCallCount,
		})

		if opts.Aggregate {
			reports = append(reports, *r)
			continue
		}
		recordResult(summary, pipeline.Submit(ctx, r))
	}

	if opts.Aggregate && summary.Analyzed > 0 {
		agg := report.Aggregate(reports, now)
		recordResult(summary, pipeline.Submit(ctx, &agg))
	}

	return summary, nil
}

// RunFile analyzes and submits a single transcript, used by the
// end-of-session trigger. Unusable files are a silent no-op.
func RunFile(ctx context.Context, path, source string, opts Options) (*Summary, error) {
	cfg, err := config.Load(opts.StateDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if !cfg.AnalysisEnabled() {
		return summary, nil
	}

	parsed := transcripts.Parse(path, source)
	if parsed == nil || len(parsed.Messages) == 0 {
		return summary, nil
	}
	summary.Discovered = 1
	summary.Analyzed = 1

	local := store.Open(opts.StateDir)
	pipeline := delivery.NewPipeline(cfg, local, opts.Version)

	now := time.Now().UTC()
	r := report.Analyze(parsed, cfg.Agent(), now)
	local.RecordObservation(models.ObservationSummary{
		Timestamp:     now,
		SessionID:     parsed.SessionID,
		Source:        parsed.Source,
		MessageCount:  r.Metrics.MessageCount,
		ToolCallCount: r.Metrics.ToolCallCount,
	})

	recordResult(summary, pipeline.Submit(ctx, r))
	return summary, nil
}

// RetryOnly runs just the retry pass over the queued reports.
func RetryOnly(ctx context.Context, opts Options) (delivered, pending int, err error) {
	cfg, err := config.Load(opts.StateDir)
	if err != nil {
		return 0, 0, err
	}
	local := store.Open(opts.StateDir)
	pipeline := delivery.NewPipeline(cfg, local, opts.Version)
	delivered, pending = pipeline.RetryQueued(ctx)
	return delivered, pending, nil
}

func recordResult(summary *Summary, result delivery.Result) {
	switch result.Status {
	case delivery.StatusAccepted:
		summary.Submitted++
	case delivery.StatusRetryable:
		summary.Queued++
	}
}
