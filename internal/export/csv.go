package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

// CSV renders the report as a sectioned CSV document, UTF-8 BOM prefixed so
// spreadsheet tools pick up the encoding.
func (Renderer) CSV(report *engine.IntelligenceReport) (string, error) {
	var sb strings.Builder
	sb.WriteString("\uFEFF")
	w := csv.NewWriter(&sb)

	rows := [][]string{
		{"YouTube Channel Intelligence Report"},
		{},
		{"SUMMARY METRICS"},
		{"Metric", "Value"},
		{"Average Views", strconv.Itoa(report.AvgViews)},
		{"Engagement Rate", fmt.Sprintf("%v%%", report.AvgEngagementRate)},
		{"Best Posting Day", report.BestPostingDay},
		{"Growth Trend", report.EngagementInsights.GrowthTrend},
		{},
		{"TOP PERFORMING TOPICS"},
		{"Topic", "Avg Views", "Video Count", "Opportunity", "Insight"},
	}
	for _, topic := range report.TopPerformingTopics {
		rows = append(rows, []string{
			topic.Topic,
			strconv.Itoa(topic.AvgViews),
			strconv.Itoa(topic.VideoCount),
			topic.Opportunity,
			topic.Insight,
		})
	}
	rows = append(rows, []string{})

	if len(report.ContentGaps) > 0 {
		rows = append(rows,
			[]string{"CONTENT GAP OPPORTUNITIES"},
			[]string{"Gap", "Competitor Avg Views", "Opportunity", "Recommended Approach"},
		)
		for _, gap := range report.ContentGaps {
			rows = append(rows, []string{
				gap.Gap,
				strconv.Itoa(gap.CompetitorAvgViews),
				gap.Opportunity,
				gap.RecommendedApproach,
			})
		}
		rows = append(rows, []string{})
	}

	if len(report.KeywordOpportunities) > 0 {
		rows = append(rows,
			[]string{"KEYWORD OPPORTUNITIES"},
			[]string{"Keyword", "Search Intent", "Competition", "Opportunity"},
		)
		for _, kw := range report.KeywordOpportunities {
			rows = append(rows, []string{kw.Keyword, kw.SearchIntent, kw.Competition, kw.Opportunity})
		}
		rows = append(rows, []string{})
	}

	if len(report.ActionableRecommendations) > 0 {
		rows = append(rows, []string{"ACTIONABLE RECOMMENDATIONS"})
		for i, rec := range report.ActionableRecommendations {
			rows = append(rows, []string{fmt.Sprintf("%d. %s", i+1, rec)})
		}
	}

	for _, row := range rows {
		if len(row) == 0 {
			row = []string{""}
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("csv write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv flush: %w", err)
	}
	return sb.String(), nil
}
