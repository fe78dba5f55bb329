package textanalysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lexdoc/pkg/common"
)

const (
	AmendmentRepeal      = "repeal"
	AmendmentAmendment   = "amendment"
	AmendmentAddition    = "addition"
	AmendmentReplacement = "replacement"
	AmendmentOther       = "other"
)

// TimelineEntry is one document placed on the timeline.
type TimelineEntry struct {
	DocumentID     string    `json:"document_id"`
	Title          string    `json:"title"`
	DocumentNumber string    `json:"document_number"`
	IssueDate      time.Time `json:"issue_date"`
	IssuingAgency  string    `json:"issuing_agency"`
	ChangeKeywords []string  `json:"change_keywords"`
}

// ChangePattern marks a year with regulatory activity well above the period
// average.
type ChangePattern struct {
	Year          int    `json:"year"`
	DocumentCount int    `json:"document_count"`
	ChangeType    string `json:"change_type"`
	Description   string `json:"description"`
}

// Amendment is a document whose content signals it changes another instrument.
type Amendment struct {
	DocumentID    string    `json:"document_id"`
	Title         string    `json:"title"`
	IssueDate     time.Time `json:"issue_date"`
	AmendmentType string    `json:"amendment_type"`
}

// TimelineSummary aggregates activity over the analysis period.
type TimelineSummary struct {
	MostActiveYear  int     `json:"most_active_year"`
	LeastActiveYear int     `json:"least_active_year"`
	AveragePerYear  float64 `json:"average_documents_per_year"`
}

// TimelineReport describes how a legal area changed over time.
type TimelineReport struct {
	Category        string                  `json:"category"`
	PeriodYears     int                     `json:"analysis_period_years"`
	TotalDocuments  int                     `json:"total_documents"`
	YearlyBreakdown map[int][]TimelineEntry `json:"yearly_breakdown"`
	ChangePatterns  []ChangePattern         `json:"change_patterns"`
	Amendments      []Amendment             `json:"amendments_and_revisions"`
	Summary         TimelineSummary         `json:"timeline_summary"`
	AnalysisDate    time.Time               `json:"analysis_date"`
}

// AnalyzeTimeline groups documents by issue year and surfaces change
// patterns: years whose document count exceeds twice the period average, and
// documents whose content carries amendment language. Documents without an
// issue date are counted in the total but left off the yearly breakdown.
// Callers filter the corpus to a category and period before the call.
func (a *Analyzer) AnalyzeTimeline(category string, docs []common.Document, yearsBack int) *TimelineReport {
	if yearsBack <= 0 {
		yearsBack = 10
	}

	yearly := make(map[int][]TimelineEntry)
	for _, doc := range docs {
		if doc.IssueDate.IsZero() {
			continue
		}
		year := doc.IssueDate.Year()
		yearly[year] = append(yearly[year], TimelineEntry{
			DocumentID:     doc.ID,
			Title:          doc.Title,
			DocumentNumber: doc.DocumentNumber,
			IssueDate:      doc.IssueDate,
			IssuingAgency:  doc.IssuingAgency,
			ChangeKeywords: a.changeKeywords(doc.Content),
		})
	}
	for _, entries := range yearly {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].IssueDate.Before(entries[j].IssueDate)
		})
	}

	years := make([]int, 0, len(yearly))
	for year := range yearly {
		years = append(years, year)
	}
	sort.Ints(years)

	average := float64(len(docs)) / float64(yearsBack)

	var patterns []ChangePattern
	for _, year := range years {
		count := len(yearly[year])
		if float64(count) > average*2 {
			patterns = append(patterns, ChangePattern{
				Year:          year,
				DocumentCount: count,
				ChangeType:    "high_activity",
				Description:   fmt.Sprintf("High regulatory activity with %d documents", count),
			})
		}
	}

	var amendments []Amendment
	for _, doc := range docs {
		content := strings.ToLower(doc.Content)
		if !containsAny(content, []string{"sửa đổi", "bổ sung", "thay thế", "bãi bỏ"}) {
			continue
		}
		amendments = append(amendments, Amendment{
			DocumentID:    doc.ID,
			Title:         doc.Title,
			IssueDate:     doc.IssueDate,
			AmendmentType: classifyAmendment(content),
		})
	}

	summary := TimelineSummary{AveragePerYear: average}
	for _, year := range years {
		count := len(yearly[year])
		if summary.MostActiveYear == 0 || count > len(yearly[summary.MostActiveYear]) {
			summary.MostActiveYear = year
		}
		if summary.LeastActiveYear == 0 || count < len(yearly[summary.LeastActiveYear]) {
			summary.LeastActiveYear = year
		}
	}

	return &TimelineReport{
		Category:        category,
		PeriodYears:     yearsBack,
		TotalDocuments:  len(docs),
		YearlyBreakdown: yearly,
		ChangePatterns:  patterns,
		Amendments:      amendments,
		Summary:         summary,
		AnalysisDate:    time.Now().UTC(),
	}
}

// changeKeywords lists the vocabulary change keywords present in content.
func (a *Analyzer) changeKeywords(content string) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, keyword := range a.vocab.ChangeKeywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

// classifyAmendment picks the amendment kind by the strongest signal present,
// repeal first.
func classifyAmendment(content string) string {
	switch {
	case containsAny(content, []string{"bãi bỏ", "hủy bỏ", "ngừng hiệu lực"}):
		return AmendmentRepeal
	case containsAny(content, []string{"sửa đổi", "điều chỉnh"}):
		return AmendmentAmendment
	case containsAny(content, []string{"bổ sung", "thêm"}):
		return AmendmentAddition
	case containsAny(content, []string{"thay thế"}):
		return AmendmentReplacement
	default:
		return AmendmentOther
	}
}
