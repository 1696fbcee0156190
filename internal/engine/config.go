package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	ScraperBaseURL    string // scraping-service API root
	ScraperToken      string
	ChannelActorID    string // hosted channel scraper
	TranscriptActorID string // hosted captions scraper

	LLMAPIKey      string
	LLMAPIBase     string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int

	FetchTimeout         time.Duration
	ScraperRPS           float64 // request pacing for the scraping service
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	LLMClient  TextCompleter // nil = insight roles unavailable
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (intel, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
