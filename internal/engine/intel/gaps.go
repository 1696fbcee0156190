package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

const (
	gapsMaxCompetitors = 3
	gapsTopicsCap      = 10 // channel topics named in the prompt
	gapsTitlesCap      = 10 // titles per competitor summary
	gapsMaxTokens      = 2500
)

type gapsPayload struct {
	Gaps []engine.ContentGap `json:"gaps"`
}

// competitorSummary is the reduced per-competitor context sent to the LLM.
type competitorSummary struct {
	Name     string   `json:"name"`
	AvgViews int      `json:"avgViews"`
	Titles   []string `json:"titles"`
}

// FindContentGaps compares channel topics against competitor uploads. Returns
// nil when no competitor data is supplied (no call is made) or when the call
// or parse fails — gaps are an optional enrichment, never blocking.
func FindContentGaps(ctx context.Context, topics []engine.Topic, competitors []*engine.ChannelSnapshot) []engine.ContentGap {
	if len(competitors) == 0 {
		return nil
	}
	if len(competitors) > gapsMaxCompetitors {
		competitors = competitors[:gapsMaxCompetitors]
	}

	names := make([]string, 0, gapsTopicsCap)
	for _, t := range topics {
		names = append(names, t.Topic)
		if len(names) == gapsTopicsCap {
			break
		}
	}

	summaries := make([]competitorSummary, 0, len(competitors))
	for _, comp := range competitors {
		summaries = append(summaries, summarizeCompetitor(comp))
	}
	summaryJSON, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(gapsPrompt, strings.Join(names, ", "), summaryJSON)
	raw, err := engine.CallLLM(ctx, gapsSystem, prompt, gapsMaxTokens)
	if err != nil {
		slog.Warn("gap analysis failed", slog.Any("error", err))
		return nil
	}

	var payload gapsPayload
	if err := engine.DecodeInsight(raw, &payload); err != nil {
		slog.Warn("gap response unparseable", slog.Any("error", err))
		return nil
	}
	return payload.Gaps
}

// summarizeCompetitor reduces a competitor snapshot to name, mean views over
// its full video list, and up to 10 titles.
func summarizeCompetitor(comp *engine.ChannelSnapshot) competitorSummary {
	s := competitorSummary{Name: comp.ChannelName}

	totalViews := 0
	for _, v := range comp.Videos {
		totalViews += v.Views
		if v.Title != "" && len(s.Titles) < gapsTitlesCap {
			s.Titles = append(s.Titles, v.Title)
		}
	}
	if len(comp.Videos) > 0 {
		s.AvgViews = totalViews / len(comp.Videos)
	}
	return s
}
