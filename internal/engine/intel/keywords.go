package intel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

const (
	keywordsMaxTranscripts = 5
	keywordsPerTranscript  = 3000 // chars kept from each transcript
	keywordsSampleCap      = 8000 // chars of combined text sent to the LLM
	keywordsMaxTokens      = 2000
)

type keywordsPayload struct {
	Keywords []engine.KeywordOpportunity `json:"keywords"`
}

// ExtractKeywords mines SEO keyword opportunities from transcripts. Returns
// nil when no transcripts are supplied (no call is made) or on any call or
// parse failure.
func ExtractKeywords(ctx context.Context, transcripts []engine.TranscriptRecord) []engine.KeywordOpportunity {
	if len(transcripts) == 0 {
		return nil
	}
	if len(transcripts) > keywordsMaxTranscripts {
		transcripts = transcripts[:keywordsMaxTranscripts]
	}

	samples := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		samples = append(samples, engine.TruncateRunes(t.Text, keywordsPerTranscript, ""))
	}
	combined := engine.TruncateRunes(strings.Join(samples, " "), keywordsSampleCap, "")

	raw, err := engine.CallLLM(ctx, keywordsSystem, fmt.Sprintf(keywordsPrompt, combined), keywordsMaxTokens)
	if err != nil {
		slog.Warn("keyword extraction failed", slog.Any("error", err))
		return nil
	}

	var payload keywordsPayload
	if err := engine.DecodeInsight(raw, &payload); err != nil {
		slog.Warn("keyword response unparseable", slog.Any("error", err))
		return nil
	}
	return payload.Keywords
}
