package intel

import (
	"testing"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

func videosWithViews(views ...int) []engine.VideoRecord {
	out := make([]engine.VideoRecord, len(views))
	for i, v := range views {
		out[i] = engine.VideoRecord{Title: "video", Views: v}
	}
	return out
}

func TestComputeStatisticsGrowthScenario(t *testing.T) {
	videos := videosWithViews(100, 200, 150, 300, 250, 400, 350, 500, 450, 600, 550, 700)
	stats := ComputeStatistics(videos)

	if stats.AvgViews != 379 {
		t.Errorf("AvgViews = %d, want 379", stats.AvgViews)
	}
	if stats.GrowthTrend != trendStrongGrowth {
		t.Errorf("GrowthTrend = %q, want %q", stats.GrowthTrend, trendStrongGrowth)
	}
	if stats.ConsistencyScore < 0 || stats.ConsistencyScore > 100 {
		t.Errorf("ConsistencyScore = %v, out of [0,100]", stats.ConsistencyScore)
	}
	if stats.BestPostingTime != fixedPostingTime {
		t.Errorf("BestPostingTime = %q, want %q", stats.BestPostingTime, fixedPostingTime)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)

	if stats.AvgViews != 0 || stats.AvgLikes != 0 || stats.AvgComments != 0 {
		t.Errorf("empty input should zero averages, got %+v", stats)
	}
	if stats.BestPostingDay != defaultPostingDay {
		t.Errorf("BestPostingDay = %q, want %q", stats.BestPostingDay, defaultPostingDay)
	}
	if stats.PeakPerformanceRange != "N/A" {
		t.Errorf("PeakPerformanceRange = %q, want N/A", stats.PeakPerformanceRange)
	}
	if stats.GrowthTrend != trendInsufficient {
		t.Errorf("GrowthTrend = %q, want %q", stats.GrowthTrend, trendInsufficient)
	}
}

func TestComputeStatisticsMissingFieldsExcluded(t *testing.T) {
	videos := []engine.VideoRecord{
		{Title: "a", Views: 100, Likes: 10},
		{Title: "b", Views: 300}, // likes missing; excluded from likes mean only
	}
	stats := ComputeStatistics(videos)

	if stats.AvgViews != 200 {
		t.Errorf("AvgViews = %d, want 200", stats.AvgViews)
	}
	if stats.AvgLikes != 10 {
		t.Errorf("AvgLikes = %d, want 10", stats.AvgLikes)
	}
}

func TestComputeStatisticsEngagementRate(t *testing.T) {
	videos := []engine.VideoRecord{
		{Title: "a", Views: 1000, Likes: 40, Comments: 10}, // 5.0%
		{Title: "b", Views: 200, Likes: 2},                 // 1.0%
		{Title: "c"},                                       // no views; excluded
	}
	stats := ComputeStatistics(videos)

	if stats.AvgEngagementRate != 3.0 {
		t.Errorf("AvgEngagementRate = %v, want 3.0", stats.AvgEngagementRate)
	}
}

func TestGrowthTrendBoundaries(t *testing.T) {
	buildViews := func(first, second int) []int {
		views := make([]int, 0, 10)
		for i := 0; i < 5; i++ {
			views = append(views, first)
		}
		for i := 0; i < 5; i++ {
			views = append(views, second)
		}
		return views
	}

	tests := []struct {
		name  string
		views []int
		want  string
	}{
		{"above 20 percent", buildViews(100, 150), trendStrongGrowth},
		{"exactly 20 percent", buildViews(100, 120), trendSteadyGrowth},
		{"small positive", buildViews(100, 110), trendSteadyGrowth},
		{"exactly zero", buildViews(100, 100), trendStable},
		{"small decline", buildViews(100, 90), trendStable},
		{"exactly minus 20", buildViews(100, 80), trendDeclining},
		{"steep decline", buildViews(100, 40), trendDeclining},
		{"too few videos", []int{100, 200, 300}, trendInsufficient},
		{"zero first half", buildViews(0, 100), trendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := growthTrend(tt.views); got != tt.want {
				t.Errorf("growthTrend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsistencyScore(t *testing.T) {
	if got := consistencyScore([]int{100, 200, 300}, 200); got != 50 {
		t.Errorf("small sample score = %v, want 50", got)
	}
	uniform := []int{500, 500, 500, 500, 500, 500}
	if got := consistencyScore(uniform, 500); got != 100 {
		t.Errorf("uniform views score = %v, want 100", got)
	}
	spread := []int{1, 1, 1, 1, 1, 5000}
	got := consistencyScore(spread, mean(spread))
	if got < 0 || got > 100 {
		t.Errorf("score %v out of [0,100]", got)
	}
}

func TestBestPostingDay(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  string
	}{
		{"clear mode", []string{"Monday, Jan 1", "Wednesday, Jan 3", "Monday, Jan 8"}, "Monday"},
		{"tie breaks to first seen", []string{"Friday, Jan 5", "Saturday, Jan 6"}, "Friday"},
		{"no recognized day", []string{"2 weeks ago", "3 days ago"}, defaultPostingDay},
		{"unrecognized dates count as default", []string{"Friday, Jan 5", "2 weeks ago", "Jan 9, 2024", "3 days ago"}, defaultPostingDay},
		{"empty strings", []string{"", ""}, defaultPostingDay},
		{"case insensitive", []string{"published sunday night"}, "Sunday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := make([]engine.VideoRecord, len(tt.dates))
			for i, d := range tt.dates {
				videos[i] = engine.VideoRecord{Published: d}
			}
			if got := bestPostingDay(videos); got != tt.want {
				t.Errorf("bestPostingDay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeakRange(t *testing.T) {
	if got := peakRange(1000); got != "800 - 1,500 views" {
		t.Errorf("peakRange(1000) = %q", got)
	}
	if got := peakRange(1_000_000); got != "800,000 - 1,500,000 views" {
		t.Errorf("peakRange(1e6) = %q", got)
	}
}
