package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

// Prompt and fallback caps for topic extraction.
const (
	topicsVideoWindow  = 20 // videos considered for analysis
	topicsPromptCap    = 15 // title/view pairs embedded in the prompt
	topicsMaxTokens    = 3000
	fallbackTopicCount = 5
	fallbackMinWordLen = 5 // words shorter than this are noise
)

type topicsPayload struct {
	Topics []engine.Topic `json:"topics"`
}

type titlePerformance struct {
	Title string `json:"title"`
	Views int    `json:"views"`
}

// ExtractTopics ranks the channel's content themes. LLM-backed; any transport
// or parse failure degrades to the deterministic word-frequency fallback.
// Result is sorted descending by average views (missing counts sort as 0).
func ExtractTopics(ctx context.Context, snap *engine.ChannelSnapshot) []engine.Topic {
	videos := snap.Videos
	if len(videos) > topicsVideoWindow {
		videos = videos[:topicsVideoWindow]
	}

	var pairs []titlePerformance
	for _, v := range videos {
		if v.Title == "" || v.Views <= 0 {
			continue
		}
		pairs = append(pairs, titlePerformance{Title: v.Title, Views: v.Views})
		if len(pairs) == topicsPromptCap {
			break
		}
	}

	performance, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return FallbackTopics(videos)
	}

	raw, err := engine.CallLLM(ctx, topicsSystem, fmt.Sprintf(topicsPrompt, performance), topicsMaxTokens)
	if err != nil {
		slog.Warn("topic extraction failed, using fallback", slog.Any("error", err))
		return FallbackTopics(videos)
	}

	var payload topicsPayload
	if err := engine.DecodeInsight(raw, &payload); err != nil {
		slog.Warn("topic response unparseable, using fallback", slog.Any("error", err))
		return FallbackTopics(videos)
	}

	sort.SliceStable(payload.Topics, func(i, j int) bool {
		return payload.Topics[i].AvgViews > payload.Topics[j].AvgViews
	})
	return payload.Topics
}

// FallbackTopics derives topics from title word frequency: words longer than
// 4 characters, counted across all analyzed videos, top 5 by count. Every
// fallback topic carries the channel-wide per-video view average.
func FallbackTopics(videos []engine.VideoRecord) []engine.Topic {
	if len(videos) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string // first-occurrence order for stable ranking
	totalViews := 0
	for _, v := range videos {
		totalViews += v.Views
		for _, word := range strings.Fields(strings.ToLower(v.Title)) {
			if len(word) < fallbackMinWordLen {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > fallbackTopicCount {
		order = order[:fallbackTopicCount]
	}

	avgViews := totalViews / len(videos)
	topics := make([]engine.Topic, 0, len(order))
	for _, word := range order {
		topics = append(topics, engine.Topic{
			Topic:       titleCase(word),
			AvgViews:    avgViews,
			VideoCount:  counts[word],
			Opportunity: "medium",
			Insight:     fmt.Sprintf("Appears in %d video titles", counts[word]),
		})
	}
	return topics
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
