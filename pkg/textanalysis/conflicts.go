package textanalysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"lexdoc/pkg/common"
)

// Conflict scoring thresholds. A candidate below the report threshold is not
// reported at all; the type thresholds classify everything above zero.
const (
	conflictReportThreshold = 0.3
	conflictHighThreshold   = 0.7
	conflictMediumThreshold = 0.4
)

const (
	ConflictTypeHigh = "high_conflict"
	ConflictTypeMed  = "medium_conflict"
	ConflictTypeLow  = "low_conflict"
	ConflictTypeNone = "no_conflict"
)

var numberRe = regexp.MustCompile(`\d+`)

// ConflictEvidence is one pattern match supporting a conflict score. Type is
// either "contradictory_terms" (the term fields are set) or
// "numerical_difference" (the value fields are set).
type ConflictEvidence struct {
	Type           string   `json:"type"`
	TargetTerms    []string `json:"target_terms,omitempty"`
	CandidateTerms []string `json:"candidate_terms,omitempty"`
	TargetValue    string   `json:"target_value,omitempty"`
	CandidateValue string   `json:"candidate_value,omitempty"`
	Difference     int64    `json:"difference,omitempty"`
}

// Conflict is one scored candidate from a conflict scan.
type Conflict struct {
	DocumentID     string             `json:"document_id"`
	Title          string             `json:"title"`
	Category       string             `json:"category"`
	Score          float64            `json:"conflict_score"`
	Type           string             `json:"conflict_type"`
	Evidence       []ConflictEvidence `json:"conflicting_passages"`
	IssueDate      time.Time          `json:"issue_date"`
	DocumentNumber string             `json:"document_number"`
}

// TemporalConflict annotates a conflict with issue-date ordering relative to
// the target document.
type TemporalConflict struct {
	Conflict
	TemporalType         string `json:"temporal_type"`
	TemporalSignificance string `json:"temporal_significance"`
	DaysDifference       int    `json:"days_difference"`
}

// ConflictSummary buckets reported conflicts by risk.
type ConflictSummary struct {
	HighRisk   int `json:"high_risk"`
	MediumRisk int `json:"medium_risk"`
	LowRisk    int `json:"low_risk"`
}

// ConflictReport is the result of scanning one target document against a
// candidate set.
type ConflictReport struct {
	DocumentID        string             `json:"document_id"`
	DocumentTitle     string             `json:"document_title"`
	TotalRelated      int                `json:"total_related_documents"`
	Conflicts         []Conflict         `json:"potential_conflicts"`
	TemporalConflicts []TemporalConflict `json:"temporal_conflicts"`
	Summary           ConflictSummary    `json:"conflict_summary"`
	AnalysisDate      time.Time          `json:"analysis_date"`
}

// ScoreConflict scores two texts for contradictory provisions. Each conflict
// pair with a restrictive term on one side and a permissive term on the other
// (either direction) adds 0.2; each pair of numeric literals, first five per
// text, differing by more than half the larger value adds 0.1. The score is
// clamped to [0,1] after accumulation.
func (a *Analyzer) ScoreConflict(target, candidate string) (float64, string, []ConflictEvidence) {
	target = strings.ToLower(target)
	candidate = strings.ToLower(candidate)

	var evidence []ConflictEvidence
	score := 0.0

	for _, pair := range a.vocab.ConflictPairs {
		restrictiveInTarget := containsAny(target, pair.Restrictive)
		permissiveInCandidate := containsAny(candidate, pair.Permissive)
		permissiveInTarget := containsAny(target, pair.Permissive)
		restrictiveInCandidate := containsAny(candidate, pair.Restrictive)

		if (restrictiveInTarget && permissiveInCandidate) || (permissiveInTarget && restrictiveInCandidate) {
			all := append(append([]string{}, pair.Restrictive...), pair.Permissive...)
			evidence = append(evidence, ConflictEvidence{
				Type:           "contradictory_terms",
				TargetTerms:    termsPresent(target, all),
				CandidateTerms: termsPresent(candidate, all),
			})
			score += 0.2
		}
	}

	targetNums := firstNumbers(target, 5)
	candidateNums := firstNumbers(candidate, 5)
	for _, n1 := range targetNums {
		for _, n2 := range candidateNums {
			larger := max(n1.value, n2.value)
			diff := n1.value - n2.value
			if diff < 0 {
				diff = -diff
			}
			if float64(diff) > float64(larger)*0.5 {
				evidence = append(evidence, ConflictEvidence{
					Type:           "numerical_difference",
					TargetValue:    n1.raw,
					CandidateValue: n2.raw,
					Difference:     diff,
				})
				score += 0.1
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	conflictType := ConflictTypeNone
	switch {
	case score > conflictHighThreshold:
		conflictType = ConflictTypeHigh
	case score > conflictMediumThreshold:
		conflictType = ConflictTypeMed
	case score > 0:
		conflictType = ConflictTypeLow
	}

	return score, conflictType, evidence
}

// DetectConflicts scans target against candidates and reports everything
// scoring above 0.3, ranked by score descending, capped at ten entries. The
// target itself is never compared even when present in candidates. Temporal
// ordering is attached as metadata over the full reported set, sorted by
// issue-date distance, and only when the target carries an issue date.
func (a *Analyzer) DetectConflicts(target common.Document, candidates []common.Document) *ConflictReport {
	var conflicts []Conflict
	for _, candidate := range candidates {
		if candidate.ID == target.ID {
			continue
		}
		score, conflictType, evidence := a.ScoreConflict(target.Content, candidate.Content)
		if score <= conflictReportThreshold {
			continue
		}
		conflicts = append(conflicts, Conflict{
			DocumentID:     candidate.ID,
			Title:          candidate.Title,
			Category:       candidate.Category,
			Score:          score,
			Type:           conflictType,
			Evidence:       evidence,
			IssueDate:      candidate.IssueDate,
			DocumentNumber: candidate.DocumentNumber,
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Score != conflicts[j].Score {
			return conflicts[i].Score > conflicts[j].Score
		}
		return conflicts[i].DocumentID < conflicts[j].DocumentID
	})

	summary := ConflictSummary{}
	for _, c := range conflicts {
		switch {
		case c.Score > conflictHighThreshold:
			summary.HighRisk++
		case c.Score >= conflictMediumThreshold:
			summary.MediumRisk++
		default:
			summary.LowRisk++
		}
	}

	temporal := temporalConflicts(target, conflicts)

	if len(conflicts) > 10 {
		conflicts = conflicts[:10]
	}

	return &ConflictReport{
		DocumentID:        target.ID,
		DocumentTitle:     target.Title,
		TotalRelated:      len(candidates),
		Conflicts:         conflicts,
		TemporalConflicts: temporal,
		Summary:           summary,
		AnalysisDate:      time.Now().UTC(),
	}
}

// temporalConflicts orders conflicts against the target's issue date. Scores
// are untouched; the annotation only says which document came first.
func temporalConflicts(target common.Document, conflicts []Conflict) []TemporalConflict {
	if target.IssueDate.IsZero() {
		return nil
	}

	var out []TemporalConflict
	for _, c := range conflicts {
		if c.IssueDate.IsZero() {
			continue
		}
		days := int(target.IssueDate.Sub(c.IssueDate).Hours() / 24)

		tc := TemporalConflict{Conflict: c, DaysDifference: days}
		switch {
		case days > 0:
			tc.TemporalType = "newer_conflicts_with_older"
			tc.TemporalSignificance = "may_supersede"
		case days < 0:
			tc.TemporalType = "older_conflicts_with_newer"
			tc.TemporalSignificance = "may_be_superseded"
			tc.DaysDifference = -days
		default:
			tc.TemporalType = "same_date"
			tc.TemporalSignificance = "simultaneous_conflict"
		}
		out = append(out, tc)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DaysDifference < out[j].DaysDifference
	})
	return out
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func termsPresent(text string, terms []string) []string {
	var found []string
	for _, term := range terms {
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}

type numLiteral struct {
	raw   string
	value int64
}

// firstNumbers extracts up to limit numeric literals, skipping any too large
// for int64.
func firstNumbers(text string, limit int) []numLiteral {
	var out []numLiteral
	for _, raw := range numberRe.FindAllString(text, -1) {
		if len(out) == limit {
			break
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, numLiteral{raw: raw, value: v})
	}
	return out
}
