package sources

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

const transcriptBatchSize = 10

// transcriptRunInput is the actor input for the captions scraper.
type transcriptRunInput struct {
	StartURLs []startURL `json:"startUrls"`
	Language  string     `json:"language"`
}

// rawTranscript is one dataset item from the captions scraper.
type rawTranscript struct {
	VideoID    string `json:"videoId"`
	Transcript string `json:"transcript"`
}

// FetchTranscripts fetches captions for the given video ids in batches.
// Transcripts are an optional enrichment: per-batch errors are logged and
// swallowed, and the result is whatever was collected.
func (c *Client) FetchTranscripts(ctx context.Context, videoIDs []string) []engine.TranscriptRecord {
	if len(videoIDs) == 0 {
		return nil
	}

	var transcripts []engine.TranscriptRecord
	for start := 0; start < len(videoIDs); start += transcriptBatchSize {
		end := min(start+transcriptBatchSize, len(videoIDs))
		batch := videoIDs[start:end]

		engine.IncrTranscriptRequest()
		input := transcriptRunInput{Language: "en"}
		for _, id := range batch {
			input.StartURLs = append(input.StartURLs, startURL{URL: watchURL(id)})
		}

		var items []rawTranscript
		if err := c.runActor(ctx, c.transcriptActorID, input, &items); err != nil {
			slog.Warn("transcript batch failed (non-critical)",
				slog.Int("batch_start", start),
				slog.Any("error", err),
			)
			continue
		}
		for _, item := range items {
			if item.Transcript == "" {
				continue
			}
			transcripts = append(transcripts, engine.TranscriptRecord{
				VideoID: item.VideoID,
				Text:    item.Transcript,
			})
		}
	}

	slog.Info("transcripts fetched", slog.Int("requested", len(videoIDs)), slog.Int("got", len(transcripts)))
	return transcripts
}
