// Package export renders assembled intelligence reports as PDF and CSV
// artifacts and stores them for the result records to link.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytintel/internal/engine"
	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
)

// Renderer renders IntelligenceReport artifacts. Stateless.
type Renderer struct{}

// Section caps for the PDF layout; the report itself is already capped.
const (
	pdfMaxTopics   = 5
	pdfMaxGaps     = 5
	pdfMaxKeywords = 10
)

// PDF renders the report as a letter-format PDF: executive summary, top
// topics, content gaps, keyword table, recommendations.
func (Renderer) PDF(report *engine.IntelligenceReport, snap *engine.ChannelSnapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(255, 0, 0)
	pdf.CellFormat(0, 12, "YouTube Channel Intelligence Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 10, tr(snap.ChannelName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Executive summary
	heading(pdf, "Executive Summary")
	summary := [][2]string{
		{"Average Views", humanize.Comma(int64(report.AvgViews))},
		{"Engagement Rate", fmt.Sprintf("%.2f%%", report.AvgEngagementRate)},
		{"Best Posting Day", report.BestPostingDay},
		{"Growth Trend", report.EngagementInsights.GrowthTrend},
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	for _, row := range summary {
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(0, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Top topics
	if len(report.TopPerformingTopics) > 0 {
		heading(pdf, "Top Performing Content Topics")
		for i, topic := range report.TopPerformingTopics {
			if i == pdfMaxTopics {
				break
			}
			subheading(pdf, fmt.Sprintf("%d. %s", i+1, tr(topic.Topic)))
			body(pdf, fmt.Sprintf("Average Views: %s | Opportunity: %s",
				humanize.Comma(int64(topic.AvgViews)), strings.ToUpper(topic.Opportunity)))
			if topic.Insight != "" {
				body(pdf, tr(topic.Insight))
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	// Content gaps
	if len(report.ContentGaps) > 0 {
		heading(pdf, "Content Gap Opportunities")
		body(pdf, "Topics your competitors are succeeding with that you haven't covered:")
		pdf.Ln(2)
		for i, gap := range report.ContentGaps {
			if i == pdfMaxGaps {
				break
			}
			subheading(pdf, fmt.Sprintf("%d. %s", i+1, tr(gap.Gap)))
			body(pdf, fmt.Sprintf("Competitor Avg Views: %s", humanize.Comma(int64(gap.CompetitorAvgViews))))
			if gap.Opportunity != "" {
				body(pdf, tr(gap.Opportunity))
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	// Keyword table
	if len(report.KeywordOpportunities) > 0 {
		pdf.AddPage()
		heading(pdf, "SEO Keyword Opportunities")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(255, 0, 0)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(55, 8, "Keyword", "1", 0, "L", true, 0, "")
		pdf.CellFormat(85, 8, "Search Intent", "1", 0, "L", true, 0, "")
		pdf.CellFormat(0, 8, "Competition", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(40, 40, 40)
		for i, kw := range report.KeywordOpportunities {
			if i == pdfMaxKeywords {
				break
			}
			pdf.CellFormat(55, 7, tr(kw.Keyword), "1", 0, "L", false, 0, "")
			pdf.CellFormat(85, 7, tr(engine.TruncateRunes(kw.SearchIntent, 40, "")), "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, strings.ToUpper(kw.Competition), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	// Recommendations
	if len(report.ActionableRecommendations) > 0 {
		heading(pdf, "Actionable Recommendations")
		body(pdf, "Specific actions to grow your channel:")
		pdf.Ln(2)
		for i, rec := range report.ActionableRecommendations {
			body(pdf, fmt.Sprintf("%d. %s", i+1, tr(rec)))
			pdf.Ln(1)
		}
	}

	// Footer
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(136, 136, 136)
	pdf.CellFormat(0, 6, "Generated by YouTube Channel Intelligence | Powered by AI", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
}

func subheading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(96, 96, 96)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
}

func body(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(0, 5, text, "", "L", false)
}
