package textanalysis

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"lexdoc/pkg/common"
)

// TermCount pairs a term with its raw corpus frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TermScore pairs a term with a computed weight (TF-IDF or importance).
type TermScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// PhraseScore pairs a multi-word phrase with its score.
type PhraseScore struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// TermFrequencyReport summarizes term statistics across a corpus.
type TermFrequencyReport struct {
	TotalDocuments int         `json:"total_documents"`
	TotalTerms     int         `json:"total_terms"`
	UniqueTerms    int         `json:"unique_terms"`
	TopByFrequency []TermCount `json:"top_by_frequency"`
	TopByTFIDF     []TermScore `json:"top_by_tfidf"`
	TopLegalTerms  []TermCount `json:"top_legal_terms"`
}

// KeywordReport holds importance-scored keywords and key phrases.
type KeywordReport struct {
	DocumentCount int           `json:"document_count"`
	Keywords      []TermScore   `json:"keywords"`
	LegalKeywords []TermScore   `json:"legal_keywords"`
	KeyPhrases    []PhraseScore `json:"key_phrases"`
}

// TermFrequency computes raw term frequencies, document frequencies and
// TF-IDF scores across the corpus, plus the legal-domain subset. TF-IDF for a
// term is count * ln(total/df); a term present in every document scores zero.
// Ties are broken by the term ascending so the top lists are stable.
func (a *Analyzer) TermFrequency(docs []common.Document, limit int) *TermFrequencyReport {
	if limit <= 0 {
		limit = 100
	}

	termCounts := make(map[string]int)
	docFreq := make(map[string]map[string]struct{})
	totalTokens := 0

	for _, doc := range docs {
		tokens := a.Tokenize(documentText(doc.Title, doc.Content, doc.Summary))
		totalTokens += len(tokens)
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			termCounts[tok]++
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			if docFreq[tok] == nil {
				docFreq[tok] = make(map[string]struct{})
			}
			docFreq[tok][doc.ID] = struct{}{}
		}
	}

	totalDocs := len(docs)
	tfidf := make(map[string]float64, len(termCounts))
	for term, count := range termCounts {
		df := len(docFreq[term])
		if df > 0 {
			tfidf[term] = float64(count) * math.Log(float64(totalDocs)/float64(df))
		}
	}

	legalCounts := make(map[string]int)
	for term, count := range termCounts {
		if _, ok := a.vocab.LegalTerms[strings.ToLower(term)]; ok {
			legalCounts[term] = count
		}
	}

	return &TermFrequencyReport{
		TotalDocuments: totalDocs,
		TotalTerms:     totalTokens,
		UniqueTerms:    len(termCounts),
		TopByFrequency: topCounts(termCounts, limit),
		TopByTFIDF:     topScores(tfidf, limit),
		TopLegalTerms:  topCounts(legalCounts, 50),
	}
}

// ExtractKeywords scores terms across the corpus by frequency, first
// occurrence (earlier is better) and length (longer is better), combined as
// tf * (1 + 0.3*position + 0.2*length). Key phrases are repeated 2- and
// 3-grams scored by count times word count.
func (a *Analyzer) ExtractKeywords(docs []common.Document, limit int) *KeywordReport {
	if limit <= 0 {
		limit = 20
	}

	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(documentText(doc.Title, doc.Content, doc.Summary))
		b.WriteString(" ")
	}
	fullText := b.String()

	terms := a.Tokenize(fullText)
	scores := a.termImportance(terms, fullText)

	legalScores := make(map[string]float64)
	for term, score := range scores {
		if _, ok := a.vocab.LegalTerms[strings.ToLower(term)]; ok {
			legalScores[term] = score
		}
	}

	return &KeywordReport{
		DocumentCount: len(docs),
		Keywords:      topScores(scores, limit),
		LegalKeywords: topScores(legalScores, limit/2),
		KeyPhrases:    a.keyPhrases(terms, limit/2),
	}
}

func (a *Analyzer) termImportance(terms []string, fullText string) map[string]float64 {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	totalTerms := len(terms)
	textLen := utf8.RuneCountInString(fullText)

	scores := make(map[string]float64, len(counts))
	for term, count := range counts {
		tf := float64(count) / float64(totalTerms)

		positionScore := 0.0
		if idx := strings.Index(fullText, term); idx >= 0 && textLen > 0 {
			firstPos := utf8.RuneCountInString(fullText[:idx])
			positionScore = 1.0 - float64(firstPos)/float64(textLen)
		}

		lengthScore := math.Min(float64(utf8.RuneCountInString(term))/10.0, 1.0)

		scores[term] = tf * (1 + positionScore*0.3 + lengthScore*0.2)
	}
	return scores
}

// keyPhrases builds 2-gram and 3-gram windows over the token stream and keeps
// phrases seen at least twice.
func (a *Analyzer) keyPhrases(terms []string, limit int) []PhraseScore {
	phraseCounts := make(map[string]int)
	for i := 0; i+1 < len(terms); i++ {
		phraseCounts[terms[i]+" "+terms[i+1]]++
	}
	for i := 0; i+2 < len(terms); i++ {
		phraseCounts[terms[i]+" "+terms[i+1]+" "+terms[i+2]]++
	}

	scored := make([]PhraseScore, 0, len(phraseCounts))
	for phrase, count := range phraseCounts {
		if count < 2 {
			continue
		}
		words := len(strings.Fields(phrase))
		scored = append(scored, PhraseScore{Phrase: phrase, Score: float64(count * words)})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Phrase < scored[j].Phrase
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func topCounts(counts map[string]int, limit int) []TermCount {
	out := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		out = append(out, TermCount{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topScores(scores map[string]float64, limit int) []TermScore {
	out := make([]TermScore, 0, len(scores))
	for term, score := range scores {
		out = append(out, TermScore{Term: term, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
