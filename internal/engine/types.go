package engine

// --- Channel data (normalized scraper output) ---

// VideoRecord is one video's metadata after count normalization.
// Immutable once fetched; owned by its ChannelSnapshot.
type VideoRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Views     int    `json:"views"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	Duration  string `json:"duration"`
	Published string `json:"published"` // raw publish string as returned by the scraper
	URL       string `json:"url"`
}

// ChannelSnapshot is a point-in-time capture of a channel's recent videos.
// VideoIDs follows Videos order; it may be shorter when per-item ids are missing.
type ChannelSnapshot struct {
	ChannelName string        `json:"channelName"`
	ChannelID   string        `json:"channelId"`
	ChannelURL  string        `json:"channelUrl"`
	Videos      []VideoRecord `json:"videos"`
	VideoIDs    []string      `json:"videoIds"`
}

// TranscriptRecord is one video's caption text. Fetched separately; optional.
type TranscriptRecord struct {
	VideoID string `json:"videoId"`
	Text    string `json:"transcript"`
}

// --- Intelligence types ---

// Topic is one ranked content theme, AI-extracted or fallback-derived.
type Topic struct {
	Topic       string   `json:"topic"`
	AvgViews    int      `json:"avgViews"`
	VideoCount  int      `json:"videoCount"`
	Opportunity string   `json:"opportunity"` // high|medium|low
	Examples    []string `json:"examples,omitempty"`
	Insight     string   `json:"insight"`
}

// ContentGap is a topic competitors cover successfully that the channel does not.
type ContentGap struct {
	Gap                 string `json:"gap"`
	CompetitorAvgViews  int    `json:"competitorAvgViews"`
	CompetitorExample   string `json:"competitorExample"`
	Opportunity         string `json:"opportunity"`
	RecommendedApproach string `json:"recommended_approach"`
}

// KeywordOpportunity is one SEO keyword suggestion mined from transcripts.
type KeywordOpportunity struct {
	Keyword      string `json:"keyword"`
	SearchIntent string `json:"searchIntent"`
	Competition  string `json:"competition"` // low|medium|high
	Opportunity  string `json:"opportunity"`
}

// Statistics is the deterministic metrics output. Zero-valued with documented
// defaults when the channel has no videos.
type Statistics struct {
	AvgViews             int     `json:"avgViews"`
	AvgLikes             int     `json:"avgLikes"`
	AvgComments          int     `json:"avgComments"`
	AvgEngagementRate    float64 `json:"avgEngagementRate"`
	BestPostingDay       string  `json:"bestPostingDay"`
	BestPostingTime      string  `json:"bestPostingTime"`
	PeakPerformanceRange string  `json:"peakPerformanceRange"`
	ConsistencyScore     float64 `json:"consistencyScore"`
	GrowthTrend          string  `json:"growthTrend"`
}

// EngagementInsights is the consistency/trend slice of Statistics surfaced
// in the report.
type EngagementInsights struct {
	PeakPerformanceRange string  `json:"peak_performance_range"`
	ConsistencyScore     float64 `json:"consistency_score"`
	GrowthTrend          string  `json:"growth_trend"`
}

// IntelligenceReport is the canonical per-channel report structure, built once
// and never mutated afterward. Consumed by the PDF/CSV renderers.
type IntelligenceReport struct {
	AvgViews                  int                  `json:"avg_views"`
	AvgEngagementRate         float64              `json:"avg_engagement_rate"`
	BestPostingDay            string               `json:"best_posting_day"`
	BestPostingTime           string               `json:"best_posting_time"`
	TopPerformingTopics       []Topic              `json:"top_performing_topics"`
	ContentGaps               []ContentGap         `json:"content_gaps"`
	KeywordOpportunities      []KeywordOpportunity `json:"keyword_opportunities"`
	EngagementInsights        EngagementInsights   `json:"engagement_insights"`
	ActionableRecommendations []string             `json:"actionable_recommendations"`
}

// --- Per-channel output records ---

// RunStatistics is the stats sub-object of a success record.
type RunStatistics struct {
	TotalVideos         int     `json:"totalVideos"`
	TotalViews          int     `json:"totalViews"`
	AvgEngagement       float64 `json:"avgEngagement"`
	TranscriptsAnalyzed int     `json:"transcriptsAnalyzed"`
}

// ChannelResult is the success record emitted per processed channel.
type ChannelResult struct {
	ChannelName    string `json:"channelName"`
	ChannelURL     string `json:"channelUrl"`
	ChannelID      string `json:"channelId"`
	VideosAnalyzed int    `json:"videosAnalyzed"`
	AnalysisType   string `json:"analysisType"`
	ProcessedAt    string `json:"processedAt"`

	TopTopic        string `json:"topTopic,omitempty"`
	AvgViews        int    `json:"avgViews"`
	BestPostingDay  string `json:"bestPostingDay"`
	BestPostingTime string `json:"bestPostingTime"`

	TopPerformingTopics       []Topic              `json:"topPerformingTopics"`
	ContentGaps               []ContentGap         `json:"contentGaps"`
	ContentGapsFound          int                  `json:"contentGapsFound"`
	KeywordOpportunities      []KeywordOpportunity `json:"keywordOpportunities"`
	EngagementInsights        EngagementInsights   `json:"engagementInsights"`
	ActionableRecommendations []string             `json:"actionableRecommendations"`

	ReportURL string `json:"reportUrl,omitempty"`
	CSVURL    string `json:"csvUrl,omitempty"`

	Statistics RunStatistics `json:"statistics"`
	Status     string        `json:"status"` // "success"
}

// ChannelFailure is the record emitted when a channel's data fetch fails.
type ChannelFailure struct {
	ChannelURL  string `json:"channelUrl"`
	Status      string `json:"status"` // "failed"
	Error       string `json:"error"`
	ProcessedAt string `json:"processedAt"`
}
