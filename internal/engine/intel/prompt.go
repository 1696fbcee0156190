package intel

// LLM prompt templates — data only, no logic.

const topicsSystem = "You are an expert YouTube content strategist who identifies trending topics and content patterns."

// topicsPrompt ranks content themes from titles + view counts.
// Args: JSON array of {title, views}.
const topicsPrompt = `Analyze these YouTube video titles and their view counts to identify top-performing content topics.

Video Titles and Performance:
%s

TASK:
1. Identify the 8-10 main content topics/themes
2. Calculate average views for each topic
3. Assess the opportunity level (high/medium/low)
4. Provide specific examples

Return ONLY valid JSON:
{
  "topics": [
    {
      "topic": "Specific topic name",
      "avgViews": 1500000,
      "videoCount": 5,
      "opportunity": "high|medium|low",
      "examples": ["Example video title 1", "Example 2"],
      "insight": "Why this topic performs well (1 sentence)"
    }
  ]
}

Focus on ACTIONABLE topic categories that a creator can replicate.`

const gapsSystem = "You are an expert at competitive YouTube content analysis."

// gapsPrompt finds topics competitors cover that the channel does not.
// Args: comma-joined channel topics, JSON array of competitor summaries.
const gapsPrompt = `Identify content gaps - topics competitors cover successfully that the main channel doesn't.

Main Channel Topics: %s

Competitor Channels:
%s

TASK:
Find 5-8 content gaps where competitors are succeeding but the main channel has no coverage.

Return ONLY valid JSON:
{
  "gaps": [
    {
      "gap": "Specific content type/topic",
      "competitorAvgViews": 1200000,
      "competitorExample": "Example video title",
      "opportunity": "Why this is a good opportunity (1 sentence)",
      "recommended_approach": "How to tackle this topic (1 sentence)"
    }
  ]
}`

const keywordsSystem = "You are an expert YouTube SEO strategist."

// keywordsPrompt mines transcript text for search keywords.
// Args: combined transcript sample.
const keywordsPrompt = `Analyze these video transcripts and identify high-value keyword opportunities for YouTube SEO.

Transcript Sample:
%s

TASK:
Find 10-15 keyword opportunities that:
1. Appear naturally in successful content
2. Have search potential
3. Are specific and actionable

Return ONLY valid JSON:
{
  "keywords": [
    {
      "keyword": "specific phrase",
      "searchIntent": "What viewers want",
      "competition": "low|medium|high",
      "opportunity": "Why use this keyword (1 sentence)"
    }
  ]
}`

const recommendationsSystem = "You are a YouTube growth consultant providing specific, actionable advice."

// recommendationsPrompt synthesizes the final advice list.
// Args: channel name, formatted avg views, top topic, growth trend, best day,
// optional gap line, optional keyword line, analysis focus, top topic, best day.
const recommendationsPrompt = `Based on this channel analysis, provide 5-7 specific, actionable recommendations.

Channel: %s
Current Performance: %s avg views
Top Topic: %s
Growth Trend: %s
Best Posting Day: %s

%s%s
Analysis Focus: %s

Provide SPECIFIC recommendations like:
- "Post '%s' content on %ss at 10 AM for 40%% higher engagement"
- NOT vague advice like "post consistently"

Return ONLY valid JSON:
{
  "recommendations": [
    "Specific actionable recommendation 1",
    "Specific actionable recommendation 2"
  ]
}`
