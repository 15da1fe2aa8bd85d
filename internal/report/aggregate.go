package report

import (
	"math"
	"sort"
	"time"

	"github.com/craftlens/craftlens/internal/models"
	"github.com/craftlens/craftlens/internal/scoring"
)

// Scope buckets for aggregated observation periods.
const (
	ScopeSingleSession = "single_session"
	ScopeDaily         = "daily"
	ScopeWeekly        = "weekly"
	ScopeMonthly       = "monthly"
)

// evidenceCap limits aggregated evidence to the most recent unique entries.
const evidenceCap = 10

// Empty returns the defined zero-session sentinel: every score 0, no
// evidence, an empty observation window.
func Empty(now time.Time) models.WorkReport {
	return models.WorkReport{
		ReportType: models.ReportPeriodicSummary,
		Orchestration: models.OrchestrationDimension{
			Complexity: models.ComplexitySinglePrompt,
		},
		ProblemSolving: models.ProblemSolvingDimension{
			Approach: models.ApproachDirect,
		},
		Domain: models.DomainDimension{
			ProjectType: "general",
		},
		Period:      models.ObservationPeriod{Scope: ScopeSingleSession},
		GeneratedAt: now,
	}
}

// Aggregate combines N single-session reports into one summary report.
// Zero sessions returns the empty sentinel; exactly one session
// short-circuits to that report unchanged.
func Aggregate(reports []models.WorkReport, now time.Time) models.WorkReport {
	switch len(reports) {
	case 0:
		return Empty(now)
	case 1:
		return reports[0]
	}

	// Discovery hands sessions over newest first; evidence merging keeps
	// the tail of the merged list, so order oldest first before merging.
	reports = chronological(reports)

	agg := models.WorkReport{
		AgentID:    reports[0].AgentID,
		ReportType: models.ReportPeriodicSummary,
	}

	agg.Communication = models.DimensionScore{
		Score:    averageScore(reports, func(r models.WorkReport) int { return r.Communication.Score }),
		Evidence: mergeEvidence(reports, func(r models.WorkReport) []string { return r.Communication.Evidence }),
		Pattern:  mostFrequent(collect(reports, func(r models.WorkReport) string { return r.Communication.Pattern })),
	}

	complexity := highestComplexity(reports)
	agg.Orchestration = models.OrchestrationDimension{
		DimensionScore: models.DimensionScore{
			Score:    averageScore(reports, func(r models.WorkReport) int { return r.Orchestration.Score }),
			Evidence: mergeEvidence(reports, func(r models.WorkReport) []string { return r.Orchestration.Evidence }),
			Pattern:  string(complexity),
		},
		Complexity: complexity,
	}

	approach := mostFrequentApproach(reports)
	agg.ProblemSolving = models.ProblemSolvingDimension{
		DimensionScore: models.DimensionScore{
			Score:    averageScore(reports, func(r models.WorkReport) int { return r.ProblemSolving.Score }),
			Evidence: mergeEvidence(reports, func(r models.WorkReport) []string { return r.ProblemSolving.Evidence }),
			Pattern:  string(approach),
		},
		Approach: approach,
	}

	agg.ToolFluency = models.ToolFluencyDimension{
		DimensionScore: models.DimensionScore{
			Score:    averageScore(reports, func(r models.WorkReport) int { return r.ToolFluency.Score }),
			Evidence: mergeEvidence(reports, func(r models.WorkReport) []string { return r.ToolFluency.Evidence }),
			Pattern:  mostFrequent(collect(reports, func(r models.WorkReport) string { return r.ToolFluency.Pattern })),
		},
		ToolsUsed:  unionSorted(reports, func(r models.WorkReport) []string { return r.ToolFluency.ToolsUsed }),
		ToolDepths: mergeDepths(reports),
	}

	projectType := mostFrequent(collect(reports, func(r models.WorkReport) string { return r.Domain.ProjectType }))
	agg.Domain = models.DomainDimension{
		DimensionScore: models.DimensionScore{
			Score:    averageScore(reports, func(r models.WorkReport) int { return r.Domain.Score }),
			Evidence: mergeEvidence(reports, func(r models.WorkReport) []string { return r.Domain.Evidence }),
			Pattern:  projectType,
		},
		Domains:     unionSorted(reports, func(r models.WorkReport) []string { return r.Domain.Domains }),
		ProjectType: projectType,
	}

	for _, r := range reports {
		agg.Metrics.TokensIn += r.Metrics.TokensIn
		agg.Metrics.TokensOut += r.Metrics.TokensOut
		agg.Metrics.DurationMinutes += r.Metrics.DurationMinutes
		agg.Metrics.MessageCount += r.Metrics.MessageCount
		agg.Metrics.ToolCallCount += r.Metrics.ToolCallCount
	}

	agg.Period = aggregatePeriod(reports)
	agg.ProjectContext = mostFrequent(collect(reports, func(r models.WorkReport) string { return r.ProjectContext }))
	agg.GeneratedAt = now
	agg.Narrative = BuildNarrative(&agg)
	return agg
}

// chronological returns a copy of the reports ordered by observation
// start, oldest first. The sort is stable so reports without a window
// keep their input order.
func chronological(reports []models.WorkReport) []models.WorkReport {
	ordered := make([]models.WorkReport, len(reports))
	copy(ordered, reports)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Period.Start.Before(ordered[j].Period.Start)
	})
	return ordered
}

func averageScore(reports []models.WorkReport, pick func(models.WorkReport) int) int {
	sum := 0
	for _, r := range reports {
		sum += pick(r)
	}
	return int(math.Round(float64(sum) / float64(len(reports))))
}

// mergeEvidence unions evidence in report order, dedupes, and keeps the
// most recent entries up to the cap.
func mergeEvidence(reports []models.WorkReport, pick func(models.WorkReport) []string) []string {
	seen := map[string]bool{}
	var merged []string
	for _, r := range reports {
		for _, e := range pick(r) {
			if e == "" || seen[e] {
				continue
			}
			seen[e] = true
			merged = append(merged, e)
		}
	}
	if len(merged) > evidenceCap {
		merged = merged[len(merged)-evidenceCap:]
	}
	return merged
}

func unionSorted(reports []models.WorkReport, pick func(models.WorkReport) []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range reports {
		for _, s := range pick(r) {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func mergeDepths(reports []models.WorkReport) map[string]models.ToolDepth {
	rank := map[models.ToolDepth]int{
		models.ToolDepthBasic:        0,
		models.ToolDepthIntermediate: 1,
		models.ToolDepthAdvanced:     2,
	}
	merged := map[string]models.ToolDepth{}
	for _, r := range reports {
		for tool, depth := range r.ToolFluency.ToolDepths {
			if existing, ok := merged[tool]; !ok || rank[depth] > rank[existing] {
				merged[tool] = depth
			}
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func highestComplexity(reports []models.WorkReport) models.Complexity {
	best := models.ComplexitySinglePrompt
	for _, r := range reports {
		if scoring.ComplexityRank(r.Orchestration.Complexity) > scoring.ComplexityRank(best) {
			best = r.Orchestration.Complexity
		}
	}
	return best
}

// mostFrequentApproach picks the modal approach; ties break toward the
// value seen first.
func mostFrequentApproach(reports []models.WorkReport) models.Approach {
	values := make([]string, 0, len(reports))
	for _, r := range reports {
		values = append(values, string(r.ProblemSolving.Approach))
	}
	return models.Approach(mostFrequent(values))
}

func collect(reports []models.WorkReport, pick func(models.WorkReport) string) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, pick(r))
	}
	return out
}

func mostFrequent(values []string) string {
	counts := map[string]int{}
	best := ""
	bestCount := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func aggregatePeriod(reports []models.WorkReport) models.ObservationPeriod {
	p := models.ObservationPeriod{SessionCount: len(reports)}
	for _, r := range reports {
		start, end := r.Period.Start, r.Period.End
		if !start.IsZero() && (p.Start.IsZero() || start.Before(p.Start)) {
			p.Start = start
		}
		if end.After(p.End) {
			p.End = end
		}
	}
	p.Scope = scopeForCount(len(reports))
	return p
}

func scopeForCount(n int) string {
	switch {
	case n <= 1:
		return ScopeSingleSession
	case n <= 5:
		return ScopeDaily
	case n <= 25:
		return ScopeWeekly
	default:
		return ScopeMonthly
	}
}
