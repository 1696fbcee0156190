package intel

import (
	"context"
	"errors"
	"testing"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
)

// allRolesResponse satisfies every insight payload at once; each role decodes
// only its own key.
const allRolesResponse = `{
	"topics": [{"topic": "Reviews", "avgViews": 500, "videoCount": 3, "opportunity": "high", "insight": "strong theme"}],
	"gaps": [{"gap": "Budget comparisons", "opportunity": "high"}],
	"keywords": [{"keyword": "budget camera", "competition": "low"}],
	"recommendations": ["Double down on review content"]
}`

type fakeFetcher struct {
	snapshots       map[string]*engine.ChannelSnapshot
	errs            map[string]error
	transcripts     []engine.TranscriptRecord
	transcriptCalls int
}

func (f *fakeFetcher) FetchChannel(_ context.Context, url string, _ int) (*engine.ChannelSnapshot, error) {
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	snap, ok := f.snapshots[url]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return snap, nil
}

func (f *fakeFetcher) FetchTranscripts(_ context.Context, _ []string) []engine.TranscriptRecord {
	f.transcriptCalls++
	return f.transcripts
}

type fakeRenderer struct {
	pdfErr error
}

func (f *fakeRenderer) PDF(*engine.IntelligenceReport, *engine.ChannelSnapshot) ([]byte, error) {
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-1.4"), nil
}

func (f *fakeRenderer) CSV(*engine.IntelligenceReport) (string, error) {
	return "header\n", nil
}

type fakeStore struct {
	keys []string
}

func (f *fakeStore) Put(key string, _ []byte, _ string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://files.example/" + key, nil
}

type memorySink struct {
	records []any
}

func (s *memorySink) Push(record any) error {
	s.records = append(s.records, record)
	return nil
}

func testSnapshot(name string) *engine.ChannelSnapshot {
	return &engine.ChannelSnapshot{
		ChannelName: name,
		ChannelID:   "UC" + name,
		ChannelURL:  "https://youtube.com/@" + name,
		Videos: []engine.VideoRecord{
			{ID: "v1", Title: "Camera Review", Views: 600, Likes: 30},
			{ID: "v2", Title: "Lens Review", Views: 400, Likes: 10},
		},
		VideoIDs: []string{"v1", "v2"},
	}
}

func testPipeline(f *fakeFetcher) (*Pipeline, *fakeStore, *memorySink) {
	store := &fakeStore{}
	sink := &memorySink{}
	p := &Pipeline{Fetcher: f, Renderer: &fakeRenderer{}, Store: store, Sink: sink}
	return p, store, sink
}

func TestRunRequiresChannelURLs(t *testing.T) {
	withCompleter(t, &fakeCompleter{response: allRolesResponse})
	p, _, _ := testPipeline(&fakeFetcher{})

	err := p.Run(context.Background(), RunInput{})
	var cfgErr *engine.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestRunRequiresLLMClient(t *testing.T) {
	engine.Init(engine.Config{})
	p, _, _ := testPipeline(&fakeFetcher{})

	err := p.Run(context.Background(), RunInput{ChannelURLs: []string{"https://youtube.com/@test"}})
	var cfgErr *engine.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestRunSuccess(t *testing.T) {
	withCompleter(t, &fakeCompleter{response: allRolesResponse})
	url := "https://youtube.com/@test"
	fetcher := &fakeFetcher{
		snapshots:   map[string]*engine.ChannelSnapshot{url: testSnapshot("test")},
		transcripts: []engine.TranscriptRecord{{VideoID: "v1", Text: "transcript text"}},
	}
	p, store, sink := testPipeline(fetcher)

	in := RunInput{ChannelURLs: []string{url}, IncludeTranscripts: true}
	if err := p.Run(context.Background(), in); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	result, ok := sink.records[0].(*engine.ChannelResult)
	if !ok {
		t.Fatalf("record type %T, want *ChannelResult", sink.records[0])
	}

	if result.Status != "success" {
		t.Errorf("Status = %q", result.Status)
	}
	if result.ChannelName != "test" || result.ChannelURL != url {
		t.Errorf("identity fields wrong: %+v", result)
	}
	if result.VideosAnalyzed != 2 || result.Statistics.TotalViews != 1000 {
		t.Errorf("run statistics wrong: %+v", result.Statistics)
	}
	if result.Statistics.TranscriptsAnalyzed != 1 {
		t.Errorf("TranscriptsAnalyzed = %d, want 1", result.Statistics.TranscriptsAnalyzed)
	}
	if result.TopTopic != "Reviews" {
		t.Errorf("TopTopic = %q, want Reviews", result.TopTopic)
	}
	if result.ReportURL == "" || result.CSVURL == "" {
		t.Error("artifact URLs missing from result")
	}
	if len(store.keys) != 2 {
		t.Errorf("stored %d artifacts, want pdf and csv", len(store.keys))
	}
	if result.ContentGaps == nil || result.KeywordOpportunities == nil {
		t.Error("result slices must be non-nil")
	}
}

func TestRunFetchFailureContinues(t *testing.T) {
	withCompleter(t, &fakeCompleter{response: allRolesResponse})
	bad := "https://youtube.com/@gone"
	good := "https://youtube.com/@test"
	fetcher := &fakeFetcher{
		snapshots: map[string]*engine.ChannelSnapshot{good: testSnapshot("test")},
		errs:      map[string]error{bad: errors.New("channel not found")},
	}
	p, _, sink := testPipeline(fetcher)

	in := RunInput{ChannelURLs: []string{bad, good}}
	if err := p.Run(context.Background(), in); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(sink.records) != 2 {
		t.Fatalf("got %d records, want failure then success", len(sink.records))
	}
	failure, ok := sink.records[0].(*engine.ChannelFailure)
	if !ok {
		t.Fatalf("records[0] type %T, want *ChannelFailure", sink.records[0])
	}
	if failure.Status != "failed" || failure.ChannelURL != bad || failure.Error == "" {
		t.Errorf("unexpected failure record: %+v", failure)
	}
	if _, ok := sink.records[1].(*engine.ChannelResult); !ok {
		t.Errorf("records[1] type %T, want *ChannelResult", sink.records[1])
	}
}

func TestRunEmptyChannelSkipped(t *testing.T) {
	withCompleter(t, &fakeCompleter{response: allRolesResponse})
	url := "https://youtube.com/@empty"
	fetcher := &fakeFetcher{
		snapshots: map[string]*engine.ChannelSnapshot{url: {ChannelName: "empty"}},
	}
	p, _, sink := testPipeline(fetcher)

	if err := p.Run(context.Background(), RunInput{ChannelURLs: []string{url}}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(sink.records) != 0 {
		t.Errorf("got %d records, want none for a channel with no videos", len(sink.records))
	}
}

func TestRunSkipsOptionalRoles(t *testing.T) {
	fake := &fakeCompleter{response: allRolesResponse}
	withCompleter(t, fake)
	url := "https://youtube.com/@test"
	fetcher := &fakeFetcher{snapshots: map[string]*engine.ChannelSnapshot{url: testSnapshot("test")}}
	p, _, sink := testPipeline(fetcher)

	// No competitors, no transcripts: only topics and recommendations call out.
	if err := p.Run(context.Background(), RunInput{ChannelURLs: []string{url}}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if fake.calls != 2 {
		t.Errorf("got %d LLM calls, want 2 (topics, recommendations)", fake.calls)
	}
	if fetcher.transcriptCalls != 0 {
		t.Errorf("transcripts fetched %d times, want 0", fetcher.transcriptCalls)
	}

	result := sink.records[0].(*engine.ChannelResult)
	if result.ContentGapsFound != 0 || len(result.KeywordOpportunities) != 0 {
		t.Errorf("optional insight output should be empty: %+v", result)
	}
}

func TestRunCompetitorFailureSkipped(t *testing.T) {
	fake := &fakeCompleter{response: allRolesResponse}
	withCompleter(t, fake)
	url := "https://youtube.com/@test"
	fetcher := &fakeFetcher{
		snapshots: map[string]*engine.ChannelSnapshot{
			url:                          testSnapshot("test"),
			"https://youtube.com/@rival": testSnapshot("rival"),
		},
		errs: map[string]error{"https://youtube.com/@gone": errors.New("not found")},
	}
	p, _, sink := testPipeline(fetcher)

	in := RunInput{
		ChannelURLs:    []string{url},
		CompetitorURLs: []string{"https://youtube.com/@gone", "https://youtube.com/@rival"},
	}
	if err := p.Run(context.Background(), in); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	result := sink.records[0].(*engine.ChannelResult)
	if result.Status != "success" {
		t.Errorf("competitor failure must not fail the channel: %+v", result)
	}
	if result.ContentGapsFound != 1 {
		t.Errorf("ContentGapsFound = %d, want 1 from the surviving competitor", result.ContentGapsFound)
	}
}

func TestRunExportFailure(t *testing.T) {
	withCompleter(t, &fakeCompleter{response: allRolesResponse})
	url := "https://youtube.com/@test"
	fetcher := &fakeFetcher{snapshots: map[string]*engine.ChannelSnapshot{url: testSnapshot("test")}}
	sink := &memorySink{}
	p := &Pipeline{
		Fetcher:  fetcher,
		Renderer: &fakeRenderer{pdfErr: errors.New("render boom")},
		Store:    &fakeStore{},
		Sink:     sink,
	}

	if err := p.Run(context.Background(), RunInput{ChannelURLs: []string{url}}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	failure, ok := sink.records[0].(*engine.ChannelFailure)
	if !ok {
		t.Fatalf("record type %T, want *ChannelFailure", sink.records[0])
	}
	if failure.Status != "failed" {
		t.Errorf("Status = %q", failure.Status)
	}
}

func TestRunCanceledContext(t *testing.T) {
	withCompleter(t, &fakeCompleter{response: allRolesResponse})
	p, _, sink := testPipeline(&fakeFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Run(ctx, RunInput{ChannelURLs: []string{"https://youtube.com/@test"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(sink.records) != 0 {
		t.Errorf("no records expected after cancellation, got %d", len(sink.records))
	}
}
