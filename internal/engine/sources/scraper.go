// Package sources fetches raw channel data through a hosted scraping service.
// Split by responsibility:
//
//	scraper.go     — service client, channel snapshot fetching, record normalization
//	transcripts.go — batched transcript fetching (always non-fatal)
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
	"golang.org/x/time/rate"
)

// Client calls the scraping service's run-sync endpoint: one POST runs a
// hosted actor and returns its dataset items directly.
type Client struct {
	baseURL           string
	token             string
	channelActorID    string
	transcriptActorID string
	httpClient        *http.Client
	limiter           *rate.Limiter
}

// NewClient builds a scraping-service client from the engine config.
func NewClient() *Client {
	rps := engine.Cfg.ScraperRPS
	if rps <= 0 {
		rps = 1
	}
	hc := engine.Cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		baseURL:           strings.TrimSuffix(engine.Cfg.ScraperBaseURL, "/"),
		token:             engine.Cfg.ScraperToken,
		channelActorID:    engine.Cfg.ChannelActorID,
		transcriptActorID: engine.Cfg.TranscriptActorID,
		httpClient:        hc,
		limiter:           rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// rawVideo is one dataset item as returned by the channel scraper. Count
// fields arrive as either JSON numbers or abbreviated strings ("1.2M").
type rawVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ChannelName string `json:"channelName"`
	ChannelID   string `json:"channelId"`
	Views       any    `json:"views"`
	Likes       any    `json:"likes"`
	Comments    any    `json:"comments"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
}

// channelRunInput is the actor input for the channel scraper.
type channelRunInput struct {
	StartURLs      []startURL `json:"startUrls"`
	MaxResults     int        `json:"maxResults"`
	SearchKeywords string     `json:"searchKeywords"`
}

type startURL struct {
	URL string `json:"url"`
}

// FetchChannel runs the channel scraper for one URL and normalizes the
// result. The snapshot cache is consulted first so competitor URLs repeated
// across channel iterations cost one run.
func (c *Client) FetchChannel(ctx context.Context, channelURL string, maxVideos int) (*engine.ChannelSnapshot, error) {
	key := engine.CacheKey("channel", channelURL, fmt.Sprint(maxVideos))
	if snap, ok := engine.CachedSnapshot(ctx, key); ok {
		return snap, nil
	}

	input := channelRunInput{
		StartURLs:  []startURL{{URL: channelURL}},
		MaxResults: maxVideos,
	}
	var items []rawVideo
	if err := c.runActor(ctx, c.channelActorID, input, &items); err != nil {
		return nil, &engine.FetchError{URL: channelURL, Err: err}
	}
	if len(items) == 0 {
		return nil, &engine.FetchError{URL: channelURL, Err: fmt.Errorf("scraper returned no videos")}
	}

	snap := buildSnapshot(channelURL, items)
	engine.StoreSnapshot(ctx, key, snap)
	return snap, nil
}

// buildSnapshot normalizes raw dataset items into a ChannelSnapshot. Channel
// identity comes from the first item, falling back to the URL.
func buildSnapshot(channelURL string, items []rawVideo) *engine.ChannelSnapshot {
	snap := &engine.ChannelSnapshot{
		ChannelName: items[0].ChannelName,
		ChannelID:   items[0].ChannelID,
		ChannelURL:  channelURL,
	}
	if snap.ChannelName == "" {
		snap.ChannelName = "Unknown"
	}
	if snap.ChannelID == "" {
		snap.ChannelID = ExtractChannelID(channelURL)
	}

	for _, item := range items {
		snap.Videos = append(snap.Videos, engine.VideoRecord{
			ID:        item.ID,
			Title:     item.Title,
			Views:     engine.NormalizeCount(item.Views),
			Likes:     engine.NormalizeCount(item.Likes),
			Comments:  engine.NormalizeCount(item.Comments),
			Duration:  item.Duration,
			Published: item.Date,
			URL:       watchURL(item.ID),
		})
		if item.ID != "" {
			snap.VideoIDs = append(snap.VideoIDs, item.ID)
		}
	}
	return snap
}

// runActor POSTs actor input to the run-sync endpoint and decodes the dataset
// items into out.
func (c *Client) runActor(ctx context.Context, actorID string, input any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	engine.IncrFetchRequest()

	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(actorID), url.QueryEscape(c.token))

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		engine.IncrFetchError()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		engine.IncrFetchError()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("actor %s: status %d: %s", actorID, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		engine.IncrFetchError()
		return fmt.Errorf("decode dataset items: %w", err)
	}
	return nil
}

// channelIDPatterns cover the URL shapes the scraper accepts.
var channelIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/@([^/?]+)`),
	regexp.MustCompile(`youtube\.com/c/([^/?]+)`),
	regexp.MustCompile(`youtube\.com/channel/([^/?]+)`),
	regexp.MustCompile(`youtube\.com/user/([^/?]+)`),
}

// ExtractChannelID pulls the channel handle or id from any channel URL shape,
// falling back to the last path segment.
func ExtractChannelID(channelURL string) string {
	for _, re := range channelIDPatterns {
		if m := re.FindStringSubmatch(channelURL); len(m) >= 2 {
			return m[1]
		}
	}
	trimmed := strings.TrimSuffix(channelURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx+1 < len(trimmed) {
		return trimmed[idx+1:]
	}
	if trimmed != "" {
		return trimmed
	}
	return "unknown"
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
