package intel

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
	"github.com/dustin/go-humanize"
)

const (
	recommendationsMax       = 7
	recommendationsMaxTokens = 1500
	growthTargetFactor       = 1.2 // 20% growth target in the fallback
)

type recommendationsPayload struct {
	Recommendations []string `json:"recommendations"`
}

// RecommendationContext carries everything the synthesis step needs from the
// earlier pipeline stages. TopGap and TopKeyword are optional.
type RecommendationContext struct {
	ChannelName  string
	AvgViews     int
	TopTopic     string // "Unknown" substituted when the channel has no topics
	BestDay      string
	GrowthTrend  string
	TopGap       *engine.ContentGap
	TopKeyword   *engine.KeywordOpportunity
	AnalysisType string
}

// BuildRecommendationContext assembles the synthesis context from prior
// pipeline outputs.
func BuildRecommendationContext(snap *engine.ChannelSnapshot, stats engine.Statistics, topics []engine.Topic, gaps []engine.ContentGap, keywords []engine.KeywordOpportunity, analysisType string) RecommendationContext {
	rc := RecommendationContext{
		ChannelName:  snap.ChannelName,
		AvgViews:     stats.AvgViews,
		TopTopic:     "Unknown",
		BestDay:      stats.BestPostingDay,
		GrowthTrend:  stats.GrowthTrend,
		AnalysisType: analysisType,
	}
	if len(topics) > 0 {
		rc.TopTopic = topics[0].Topic
	}
	if len(gaps) > 0 {
		rc.TopGap = &gaps[0]
	}
	if len(keywords) > 0 {
		rc.TopKeyword = &keywords[0]
	}
	return rc
}

// GenerateRecommendations synthesizes up to 7 actionable recommendations from
// the full analysis context. LLM failure degrades to the deterministic
// template fallback.
func GenerateRecommendations(ctx context.Context, rc RecommendationContext) []string {
	gapLine := ""
	if rc.TopGap != nil {
		gapLine = fmt.Sprintf("Biggest Content Gap: %s\n", rc.TopGap.Gap)
	}
	keywordLine := ""
	if rc.TopKeyword != nil {
		keywordLine = fmt.Sprintf("Top Keyword Opportunity: %s\n", rc.TopKeyword.Keyword)
	}

	prompt := fmt.Sprintf(recommendationsPrompt,
		rc.ChannelName,
		humanize.Comma(int64(rc.AvgViews)),
		rc.TopTopic,
		rc.GrowthTrend,
		rc.BestDay,
		gapLine,
		keywordLine,
		rc.AnalysisType,
		rc.TopTopic,
		rc.BestDay,
	)

	raw, err := engine.CallLLM(ctx, recommendationsSystem, prompt, recommendationsMaxTokens)
	if err != nil {
		slog.Warn("recommendation synthesis failed, using fallback", slog.Any("error", err))
		return FallbackRecommendations(rc)
	}

	var payload recommendationsPayload
	if err := engine.DecodeInsight(raw, &payload); err != nil {
		slog.Warn("recommendation response unparseable, using fallback", slog.Any("error", err))
		return FallbackRecommendations(rc)
	}
	if len(payload.Recommendations) == 0 {
		return FallbackRecommendations(rc)
	}
	if len(payload.Recommendations) > recommendationsMax {
		payload.Recommendations = payload.Recommendations[:recommendationsMax]
	}
	return payload.Recommendations
}

// FallbackRecommendations returns five template recommendations built from
// the deterministic parts of the context.
func FallbackRecommendations(rc RecommendationContext) []string {
	target := humanize.Comma(int64(math.Round(float64(rc.AvgViews) * growthTargetFactor)))
	return []string{
		fmt.Sprintf("Focus on your top-performing topic: %s", rc.TopTopic),
		fmt.Sprintf("Post consistently on %ss for best engagement", rc.BestDay),
		fmt.Sprintf("Target %s views per video (20%% growth)", target),
		"Optimize thumbnails for your top-performing content style",
		"Analyze competitor content in your niche for new ideas",
	}
}
