package textanalysis

import (
	"testing"
	"time"

	"lexdoc/pkg/common"
)

func TestScoreConflictContradictoryTerms(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	score, conflictType, evidence := analyzer.ScoreConflict(
		"không được xuất khẩu hàng cấm",
		"được phép xuất khẩu sau khi cấp phép",
	)

	if score < 0.2 {
		t.Errorf("score = %f, want >= 0.2", score)
	}
	if conflictType != ConflictTypeLow {
		t.Errorf("type = %q, want %q", conflictType, ConflictTypeLow)
	}
	if len(evidence) != 1 || evidence[0].Type != "contradictory_terms" {
		t.Fatalf("evidence = %+v, want one contradictory_terms entry", evidence)
	}

	hasTerm := func(terms []string, want string) bool {
		for _, term := range terms {
			if term == want {
				return true
			}
		}
		return false
	}
	if !hasTerm(evidence[0].TargetTerms, "không được") {
		t.Errorf("target terms = %v, missing %q", evidence[0].TargetTerms, "không được")
	}
	if !hasTerm(evidence[0].CandidateTerms, "được phép") {
		t.Errorf("candidate terms = %v, missing %q", evidence[0].CandidateTerms, "được phép")
	}
}

func TestScoreConflictNumericalDifference(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	score, _, evidence := analyzer.ScoreConflict(
		"mức phạt tối thiểu 100 triệu đồng",
		"mức phạt tối đa 500 triệu đồng",
	)

	// Minimum-vs-maximum pair (0.2) plus the 100/500 difference (0.1).
	if score < 0.3-1e-9 {
		t.Errorf("score = %f, want >= 0.3", score)
	}
	foundNumeric := false
	for _, e := range evidence {
		if e.Type == "numerical_difference" {
			foundNumeric = true
			if e.Difference != 400 {
				t.Errorf("difference = %d, want 400", e.Difference)
			}
		}
	}
	if !foundNumeric {
		t.Errorf("evidence = %+v, missing numerical_difference", evidence)
	}
}

func TestScoreConflictClamped(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// 25 numeric pairs all differing by more than half the larger value.
	score, conflictType, _ := analyzer.ScoreConflict(
		"1 2 3 4 5",
		"1000000 2000000 3000000 4000000 5000000",
	)

	if score != 1.0 {
		t.Errorf("score = %f, want clamped 1.0", score)
	}
	if conflictType != ConflictTypeHigh {
		t.Errorf("type = %q, want %q", conflictType, ConflictTypeHigh)
	}
}

func TestScoreConflictNone(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	score, conflictType, evidence := analyzer.ScoreConflict(
		"văn bản về thương mại",
		"văn bản về giao thông",
	)
	if score != 0 || conflictType != ConflictTypeNone || len(evidence) != 0 {
		t.Errorf("got score=%f type=%q evidence=%v, want empty result", score, conflictType, evidence)
	}
}

func TestDetectConflicts(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	target := common.Document{
		ID:        "target",
		Title:     "Quy định xuất khẩu",
		Content:   "không được xuất khẩu quá 100 tấn trong 10 ngày",
		IssueDate: time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	conflicting := common.Document{
		ID:        "other",
		Title:     "Quy định mới",
		Content:   "được phép xuất khẩu 500 tấn trong 30 ngày",
		IssueDate: time.Date(2021, 6, 5, 0, 0, 0, 0, time.UTC),
	}
	unrelated := common.Document{
		ID:      "neutral",
		Content: "quy định về đăng ký phương tiện giao thông",
	}

	// The target itself is in the candidate set and must be skipped.
	report := analyzer.DetectConflicts(target, []common.Document{target, conflicting, unrelated})

	if report.TotalRelated != 3 {
		t.Errorf("TotalRelated = %d, want 3", report.TotalRelated)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %+v, want exactly one", report.Conflicts)
	}

	c := report.Conflicts[0]
	if c.DocumentID != "other" {
		t.Errorf("conflict document = %q, want other", c.DocumentID)
	}
	if c.Score < 0 || c.Score > 1 {
		t.Errorf("score %f outside [0,1]", c.Score)
	}
	if c.Type != ConflictTypeMed {
		t.Errorf("type = %q, want %q", c.Type, ConflictTypeMed)
	}
	if report.Summary.MediumRisk != 1 || report.Summary.HighRisk != 0 {
		t.Errorf("summary = %+v", report.Summary)
	}

	if len(report.TemporalConflicts) != 1 {
		t.Fatalf("temporal conflicts = %+v, want one", report.TemporalConflicts)
	}
	tc := report.TemporalConflicts[0]
	if tc.TemporalSignificance != "may_supersede" {
		t.Errorf("temporal significance = %q, want may_supersede", tc.TemporalSignificance)
	}
	if tc.DaysDifference != 10 {
		t.Errorf("days difference = %d, want 10", tc.DaysDifference)
	}
}

func TestDetectConflictsOlderTarget(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	target := common.Document{
		ID:        "target",
		Content:   "không được xuất khẩu quá 100 tấn trong 10 ngày",
		IssueDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := common.Document{
		ID:        "newer",
		Content:   "được phép xuất khẩu 500 tấn trong 30 ngày",
		IssueDate: time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	report := analyzer.DetectConflicts(target, []common.Document{newer})
	if len(report.TemporalConflicts) != 1 {
		t.Fatalf("temporal conflicts = %+v", report.TemporalConflicts)
	}
	tc := report.TemporalConflicts[0]
	if tc.TemporalSignificance != "may_be_superseded" {
		t.Errorf("temporal significance = %q, want may_be_superseded", tc.TemporalSignificance)
	}
	if tc.DaysDifference != 30 {
		t.Errorf("days difference = %d, want 30", tc.DaysDifference)
	}
}

func TestDetectConflictsNoIssueDate(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	target := common.Document{ID: "t", Content: "không được xuất khẩu quá 100 tấn trong 10 ngày"}
	other := common.Document{
		ID:        "o",
		Content:   "được phép xuất khẩu 500 tấn trong 30 ngày",
		IssueDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	report := analyzer.DetectConflicts(target, []common.Document{other})
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %+v", report.Conflicts)
	}
	if len(report.TemporalConflicts) != 0 {
		t.Errorf("temporal conflicts without target date: %+v", report.TemporalConflicts)
	}
}
