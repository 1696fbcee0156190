package intel

import (
	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

// Report truncation caps. Hard limits, not validation: shorter sequences pass
// through unchanged.
const (
	maxReportTopics   = 10
	maxReportGaps     = 10
	maxReportKeywords = 15
	maxReportRecs     = 7
)

// AssembleReport combines statistics and the four insight outputs into the
// immutable per-channel report. Slices are always non-nil so renderers and
// JSON consumers see empty lists, never null.
func AssembleReport(stats engine.Statistics, topics []engine.Topic, gaps []engine.ContentGap, keywords []engine.KeywordOpportunity, recommendations []string) engine.IntelligenceReport {
	return engine.IntelligenceReport{
		AvgViews:                  stats.AvgViews,
		AvgEngagementRate:         stats.AvgEngagementRate,
		BestPostingDay:            stats.BestPostingDay,
		BestPostingTime:           stats.BestPostingTime,
		TopPerformingTopics:       capped(topics, maxReportTopics),
		ContentGaps:               capped(gaps, maxReportGaps),
		KeywordOpportunities:      capped(keywords, maxReportKeywords),
		ActionableRecommendations: capped(recommendations, maxReportRecs),
		EngagementInsights: engine.EngagementInsights{
			PeakPerformanceRange: stats.PeakPerformanceRange,
			ConsistencyScore:     stats.ConsistencyScore,
			GrowthTrend:          stats.GrowthTrend,
		},
	}
}

// capped truncates s to n elements and normalizes nil to an empty slice.
func capped[T any](s []T, n int) []T {
	if s == nil {
		return []T{}
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
