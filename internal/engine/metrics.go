package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	TranscriptRequests atomic.Int64
}

// IncrLLMCall increments the LLM call counter.
func IncrLLMCall() { metrics.LLMCalls.Add(1) }

// IncrLLMError increments the LLM error counter.
func IncrLLMError() { metrics.LLMErrors.Add(1) }

// IncrFetchRequest increments the scraper request counter.
func IncrFetchRequest() { metrics.FetchRequests.Add(1) }

// IncrFetchError increments the scraper error counter.
func IncrFetchError() { metrics.FetchErrors.Add(1) }

// IncrTranscriptRequest increments the transcript batch counter.
func IncrTranscriptRequest() { metrics.TranscriptRequests.Add(1) }

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for end-of-run logging.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"llm_calls", "llm_errors",
		"fetch_requests", "fetch_errors",
		"transcript_requests",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
