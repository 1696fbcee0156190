package intel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

const transcriptVideoCap = 10 // transcripts fetched per channel

// Fetcher is the data-acquisition collaborator. FetchTranscripts never fails
// upward: internal errors degrade to an empty slice.
type Fetcher interface {
	FetchChannel(ctx context.Context, channelURL string, maxVideos int) (*engine.ChannelSnapshot, error)
	FetchTranscripts(ctx context.Context, videoIDs []string) []engine.TranscriptRecord
}

// Renderer turns an assembled report into export artifacts.
type Renderer interface {
	PDF(report *engine.IntelligenceReport, snap *engine.ChannelSnapshot) ([]byte, error)
	CSV(report *engine.IntelligenceReport) (string, error)
}

// ArtifactStore persists a rendered artifact and returns its public URL.
type ArtifactStore interface {
	Put(key string, data []byte, contentType string) (string, error)
}

// ResultSink receives one record per processed channel
// (*engine.ChannelResult or *engine.ChannelFailure).
type ResultSink interface {
	Push(record any) error
}

// RunInput is the parsed run configuration.
type RunInput struct {
	ChannelURLs        []string
	CompetitorURLs     []string
	VideoCount         int
	IncludeTranscripts bool
	AnalysisType       string
}

// Pipeline sequences the per-channel analysis. Channels are processed
// strictly one at a time; each channel's intermediate data stays local to its
// iteration.
type Pipeline struct {
	Fetcher  Fetcher
	Renderer Renderer
	Store    ArtifactStore
	Sink     ResultSink
}

// Run processes each requested channel in order. A channel whose data fetch
// fails yields a failure record and processing continues; cancellation stops
// before the next channel without touching already-emitted records.
func (p *Pipeline) Run(ctx context.Context, in RunInput) error {
	if len(in.ChannelURLs) == 0 {
		return &engine.ConfigError{Reason: "at least one channel URL required"}
	}
	if engine.Cfg.LLMClient == nil {
		return &engine.ConfigError{Reason: "generative-text credential required"}
	}
	if in.VideoCount <= 0 {
		in.VideoCount = 20
	}
	if in.AnalysisType == "" {
		in.AnalysisType = "comprehensive"
	}

	for i, channelURL := range in.ChannelURLs {
		if err := ctx.Err(); err != nil {
			return err
		}
		slog.Info("processing channel",
			slog.Int("index", i+1),
			slog.Int("total", len(in.ChannelURLs)),
			slog.String("url", channelURL),
		)
		p.analyzeChannel(ctx, channelURL, in)
	}
	return nil
}

// analyzeChannel runs the full per-channel sequence: fetch → transcripts →
// competitors → stats → topics → gaps → keywords → recommendations →
// assemble → render → emit.
func (p *Pipeline) analyzeChannel(ctx context.Context, channelURL string, in RunInput) {
	snap, err := p.Fetcher.FetchChannel(ctx, channelURL, in.VideoCount)
	if err != nil {
		slog.Error("channel fetch failed", slog.String("url", channelURL), slog.Any("error", err))
		p.pushFailure(channelURL, err)
		return
	}
	if len(snap.Videos) == 0 {
		slog.Warn("no videos found, skipping", slog.String("url", channelURL))
		return
	}
	slog.Info("fetched channel", slog.String("channel", snap.ChannelName), slog.Int("videos", len(snap.Videos)))

	var transcripts []engine.TranscriptRecord
	if in.IncludeTranscripts {
		ids := snap.VideoIDs
		if len(ids) > transcriptVideoCap {
			ids = ids[:transcriptVideoCap]
		}
		transcripts = p.Fetcher.FetchTranscripts(ctx, ids)
		slog.Info("fetched transcripts", slog.Int("count", len(transcripts)))
	}

	// Per-competitor failures are skipped, never fatal.
	var competitors []*engine.ChannelSnapshot
	for _, compURL := range in.CompetitorURLs {
		comp, err := p.Fetcher.FetchChannel(ctx, compURL, in.VideoCount)
		if err != nil {
			slog.Warn("competitor fetch failed, skipping", slog.String("url", compURL), slog.Any("error", err))
			continue
		}
		competitors = append(competitors, comp)
	}

	stats := ComputeStatistics(snap.Videos)
	topics := ExtractTopics(ctx, snap)

	var gaps []engine.ContentGap
	if len(competitors) > 0 {
		gaps = FindContentGaps(ctx, topics, competitors)
	}

	var keywords []engine.KeywordOpportunity
	if len(transcripts) > 0 {
		keywords = ExtractKeywords(ctx, transcripts)
	}

	rc := BuildRecommendationContext(snap, stats, topics, gaps, keywords, in.AnalysisType)
	recommendations := GenerateRecommendations(ctx, rc)

	report := AssembleReport(stats, topics, gaps, keywords, recommendations)

	reportURL, csvURL, err := p.export(&report, snap)
	if err != nil {
		slog.Error("export failed", slog.String("url", channelURL), slog.Any("error", err))
		p.pushFailure(channelURL, err)
		return
	}

	result := buildChannelResult(channelURL, snap, &report, in.AnalysisType, len(transcripts))
	result.ReportURL = reportURL
	result.CSVURL = csvURL
	if err := p.Sink.Push(result); err != nil {
		slog.Error("result push failed", slog.Any("error", err))
	}

	slog.Info("channel analysis complete",
		slog.String("channel", snap.ChannelName),
		slog.String("top_topic", result.TopTopic),
		slog.Int("avg_views", result.AvgViews),
		slog.Int("gaps_found", result.ContentGapsFound),
	)
}

// export renders and stores the PDF and CSV artifacts.
func (p *Pipeline) export(report *engine.IntelligenceReport, snap *engine.ChannelSnapshot) (reportURL, csvURL string, err error) {
	pdf, err := p.Renderer.PDF(report, snap)
	if err != nil {
		return "", "", fmt.Errorf("render pdf: %w", err)
	}
	reportURL, err = p.Store.Put(snap.ChannelID+"_intelligence_report.pdf", pdf, "application/pdf")
	if err != nil {
		return "", "", fmt.Errorf("store pdf: %w", err)
	}

	csv, err := p.Renderer.CSV(report)
	if err != nil {
		return "", "", fmt.Errorf("render csv: %w", err)
	}
	csvURL, err = p.Store.Put(snap.ChannelID+"_data.csv", []byte(csv), "text/csv")
	if err != nil {
		return "", "", fmt.Errorf("store csv: %w", err)
	}
	return reportURL, csvURL, nil
}

func (p *Pipeline) pushFailure(channelURL string, err error) {
	failure := &engine.ChannelFailure{
		ChannelURL:  channelURL,
		Status:      "failed",
		Error:       err.Error(),
		ProcessedAt: nowUTC(),
	}
	if pushErr := p.Sink.Push(failure); pushErr != nil {
		slog.Error("failure push failed", slog.Any("error", pushErr))
	}
}

// buildChannelResult flattens the report into the per-channel output record.
func buildChannelResult(channelURL string, snap *engine.ChannelSnapshot, report *engine.IntelligenceReport, analysisType string, transcriptCount int) *engine.ChannelResult {
	totalViews := 0
	for _, v := range snap.Videos {
		totalViews += v.Views
	}

	topTopic := ""
	if len(report.TopPerformingTopics) > 0 {
		topTopic = report.TopPerformingTopics[0].Topic
	}

	return &engine.ChannelResult{
		ChannelName:    snap.ChannelName,
		ChannelURL:     channelURL,
		ChannelID:      snap.ChannelID,
		VideosAnalyzed: len(snap.Videos),
		AnalysisType:   analysisType,
		ProcessedAt:    nowUTC(),

		TopTopic:        topTopic,
		AvgViews:        report.AvgViews,
		BestPostingDay:  report.BestPostingDay,
		BestPostingTime: report.BestPostingTime,

		TopPerformingTopics:       report.TopPerformingTopics,
		ContentGaps:               report.ContentGaps,
		ContentGapsFound:          len(report.ContentGaps),
		KeywordOpportunities:      report.KeywordOpportunities,
		EngagementInsights:        report.EngagementInsights,
		ActionableRecommendations: report.ActionableRecommendations,

		Statistics: engine.RunStatistics{
			TotalVideos:         len(snap.Videos),
			TotalViews:          totalViews,
			AvgEngagement:       report.AvgEngagementRate,
			TranscriptsAnalyzed: transcriptCount,
		},
		Status: "success",
	}
}

// nowUTC returns the current time in ISO-8601 UTC.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
