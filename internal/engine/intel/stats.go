// Package intel implements the channel intelligence core: the deterministic
// metrics engine, the four LLM-backed analysis roles (topics, gaps, keywords,
// recommendations) with their deterministic fallbacks, the report assembler,
// and the per-channel pipeline that sequences them.
package intel

import (
	"fmt"
	"math"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
	"github.com/dustin/go-humanize"
)

// Categorical defaults used when video data is missing or insufficient.
const (
	defaultPostingDay  = "Tuesday"
	fixedPostingTime   = "10:00 AM EST" // not derived from data; documented limitation
	trendInsufficient  = "Insufficient Data"
	trendStrongGrowth  = "Strong Growth"
	trendSteadyGrowth  = "Steady Growth"
	trendStable        = "Stable"
	trendDeclining     = "Declining"
	minVideosForTrend  = 10
	minVideosForStddev = 6
)

// ComputeStatistics derives channel statistics from video records. Pure and
// total: empty input yields zeroed stats with documented defaults.
func ComputeStatistics(videos []engine.VideoRecord) engine.Statistics {
	if len(videos) == 0 {
		return emptyStatistics()
	}

	// Per-field samples: a video missing one count is excluded from that
	// field's mean only.
	var views, likes, comments []int
	for _, v := range videos {
		if v.Views > 0 {
			views = append(views, v.Views)
		}
		if v.Likes > 0 {
			likes = append(likes, v.Likes)
		}
		if v.Comments > 0 {
			comments = append(comments, v.Comments)
		}
	}

	avgViews := mean(views)
	avgLikes := mean(likes)
	avgComments := mean(comments)

	var engagementRates []float64
	for _, v := range videos {
		if v.Views > 0 {
			engagementRates = append(engagementRates, float64(v.Likes+v.Comments)/float64(v.Views)*100)
		}
	}
	avgEngagement := meanFloat(engagementRates)

	return engine.Statistics{
		AvgViews:             int(avgViews),
		AvgLikes:             int(avgLikes),
		AvgComments:          int(avgComments),
		AvgEngagementRate:    round2(avgEngagement),
		BestPostingDay:       bestPostingDay(videos),
		BestPostingTime:      fixedPostingTime,
		PeakPerformanceRange: peakRange(avgViews),
		ConsistencyScore:     consistencyScore(views, avgViews),
		GrowthTrend:          growthTrend(views),
	}
}

func emptyStatistics() engine.Statistics {
	return engine.Statistics{
		BestPostingDay:       defaultPostingDay,
		BestPostingTime:      fixedPostingTime,
		PeakPerformanceRange: "N/A",
		GrowthTrend:          trendInsufficient,
	}
}

// bestPostingDay is the stable mode of weekday names found in raw publish
// strings. A non-empty publish string with no recognizable weekday counts as
// Tuesday, so channels whose dates never embed day names mode to the default.
// Ties break toward the day encountered first.
func bestPostingDay(videos []engine.VideoRecord) string {
	counts := make(map[string]int)
	var order []string
	for _, v := range videos {
		if v.Published == "" {
			continue
		}
		day, ok := engine.ExtractWeekday(v.Published)
		if !ok {
			day = defaultPostingDay
		}
		if counts[day] == 0 {
			order = append(order, day)
		}
		counts[day]++
	}

	best := defaultPostingDay
	bestCount := 0
	for _, day := range order {
		if counts[day] > bestCount {
			best = day
			bestCount = counts[day]
		}
	}
	return best
}

// peakRange formats the expected performance band around the view average.
func peakRange(avgViews float64) string {
	low := humanize.Comma(int64(avgViews * 0.8))
	high := humanize.Comma(int64(avgViews * 1.5))
	return fmt.Sprintf("%s - %s views", low, high)
}

// consistencyScore maps view variance to [0,100]. With fewer than 6
// views-bearing videos the sample is too small to score; fixed 50.
func consistencyScore(views []int, avgViews float64) float64 {
	if len(views) < minVideosForStddev {
		return 50
	}
	if avgViews <= 0 {
		return 0
	}
	sd := popStddev(views, avgViews)
	return round1(100 - math.Min(sd/avgViews*100, 100))
}

// growthTrend classifies first-half vs second-half view means. Boundaries are
// strict: growth of exactly 20 is Steady, exactly 0 is Stable, exactly -20 is
// Declining.
func growthTrend(views []int) string {
	if len(views) < minVideosForTrend {
		return trendInsufficient
	}
	half := len(views) / 2
	firstMean := mean(views[:half])
	secondMean := mean(views[half:])

	growth := 0.0
	if firstMean > 0 {
		growth = (secondMean - firstMean) / firstMean * 100
	}

	switch {
	case growth > 20:
		return trendStrongGrowth
	case growth > 0:
		return trendSteadyGrowth
	case growth > -20:
		return trendStable
	default:
		return trendDeclining
	}
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func meanFloat(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// popStddev is the population standard deviation (denominator n, not n-1).
func popStddev(xs []int, mean float64) float64 {
	var sumSq float64
	for _, x := range xs {
		d := float64(x) - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
