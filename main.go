// go_ytintel — YouTube channel intelligence pipeline.
//
// Reads a run input (channel URLs plus optional competitors and settings),
// fetches channel data through a hosted scraping service, runs the
// statistics + AI insight pipeline, and writes PDF/CSV reports plus one
// result record per channel.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go_ytintel/internal/engine"
	"github.com/anatolykoptev/go_ytintel/internal/engine/intel"
	"github.com/anatolykoptev/go_ytintel/internal/engine/sources"
	"github.com/anatolykoptev/go_ytintel/internal/export"
	"github.com/joho/godotenv"
)

var version = "dev"

// runInputFile mirrors the run-input JSON: newline-separated URL blocks plus
// settings. apiKey overrides the environment credential.
type runInputFile struct {
	ChannelURLs            string `json:"channelUrls"`
	CompareWithCompetitors string `json:"compareWithCompetitors"`
	VideoCount             int    `json:"videoCount"`
	IncludeTranscripts     *bool  `json:"includeTranscripts"`
	AnalysisType           string `json:"analysisType"`
	APIKey                 string `json:"apiKey"`
}

func main() {
	inputPath := flag.String("input", "input.json", "run input JSON file ('-' for stdin)")
	flag.Parse()

	_ = godotenv.Load()

	slog.Info("starting go_ytintel", slog.String("version", version))

	input, err := readRunInput(*inputPath)
	if err != nil {
		fatal("read input", err)
	}

	in := intel.RunInput{
		ChannelURLs:        splitLines(input.ChannelURLs),
		CompetitorURLs:     splitLines(input.CompareWithCompetitors),
		VideoCount:         input.VideoCount,
		IncludeTranscripts: input.IncludeTranscripts == nil || *input.IncludeTranscripts,
		AnalysisType:       input.AnalysisType,
	}
	if len(in.ChannelURLs) == 0 {
		fatal("validate input", &engine.ConfigError{Reason: "at least one channel URL required"})
	}

	initEngine(input.APIKey)

	outDir := env.Str("OUT_DIR", "./output")
	store, err := export.NewFileStore(outDir, env.Str("ARTIFACT_BASE_URL", ""))
	if err != nil {
		fatal("init artifact store", err)
	}
	sink, err := newJSONLSink(filepath.Join(outDir, "results.jsonl"))
	if err != nil {
		fatal("init result sink", err)
	}
	defer sink.Close()

	pipeline := &intel.Pipeline{
		Fetcher:  sources.NewClient(),
		Renderer: export.Renderer{},
		Store:    store,
		Sink:     sink,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("analyzing channels",
		slog.Int("channels", len(in.ChannelURLs)),
		slog.Int("competitors", len(in.CompetitorURLs)),
	)
	if err := pipeline.Run(ctx, in); err != nil {
		fatal("pipeline run", err)
	}

	slog.Info("all channels processed", slog.String("results", sink.path))
	fmt.Print(engine.FormatMetrics())
}

func initEngine(userAPIKey string) {
	c := engine.Config{
		ScraperBaseURL:    env.Str("SCRAPER_BASE_URL", "https://api.apify.com"),
		ScraperToken:      env.Str("SCRAPER_TOKEN", ""),
		ChannelActorID:    env.Str("CHANNEL_ACTOR_ID", "streamers~youtube-scraper"),
		TranscriptActorID: env.Str("TRANSCRIPT_ACTOR_ID", "bernardo~youtube-captions-scraper"),

		LLMAPIKey:      env.Str("LLM_API_KEY", ""),
		LLMAPIBase:     env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:       env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature: env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:   env.Int("LLM_MAX_TOKENS", 4096),

		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 120*time.Second),
		ScraperRPS:           env.Float("SCRAPER_RPS", 1),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 200),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}
	c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}

	// User-supplied key wins over the environment credential; absence of
	// both is fatal before any channel is processed.
	if userAPIKey != "" {
		c.LLMAPIKey = userAPIKey
	}
	if c.LLMAPIKey == "" {
		fatal("configure llm", &engine.ConfigError{Reason: "generative-text credential required (LLM_API_KEY or input apiKey)"})
	}
	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)

	engine.Init(c)
	engine.InitCache(
		env.Str("REDIS_URL", ""),
		env.Duration("CACHE_TTL", 15*time.Minute),
		c.CacheMaxEntries,
		c.CacheCleanupInterval,
	)
}

func readRunInput(path string) (*runInputFile, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var input runInputFile
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &input, nil
}

// splitLines splits a newline-separated URL block, dropping blanks.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func fatal(stage string, err error) {
	slog.Error(stage+" failed", slog.Any("error", err))
	os.Exit(1)
}

// jsonlSink appends one JSON record per line to the results file.
type jsonlSink struct {
	path string
	f    *os.File
	enc  *json.Encoder
}

func newJSONLSink(path string) (*jsonlSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create results file: %w", err)
	}
	return &jsonlSink{path: path, f: f, enc: json.NewEncoder(f)}, nil
}

func (s *jsonlSink) Push(record any) error {
	return s.enc.Encode(record)
}

func (s *jsonlSink) Close() error {
	return s.f.Close()
}
