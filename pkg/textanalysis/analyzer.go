package textanalysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// nonWordRe strips everything outside the word-character and Vietnamese
// accented-letter alphabet before tokenizing.
var nonWordRe = regexp.MustCompile(`[^\w\sàáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ]`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Analyzer runs corpus-level lexical analyses: term statistics, keyword
// extraction, document clustering, citation networks and conflict scans.
// All operations are pure, synchronous computations over the documents
// passed in; the analyzer holds no corpus state.
type Analyzer struct {
	vocab *Vocabulary
}

// NewAnalyzer creates an analyzer over the given vocabulary. A nil vocabulary
// selects DefaultVocabulary.
func NewAnalyzer(vocab *Vocabulary) *Analyzer {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Analyzer{vocab: vocab}
}

// Tokenize splits text into normalized word tokens: characters outside the
// word alphabet are stripped, whitespace runs collapsed, tokens of length two
// or less and stop words dropped. Case is not normalized here; callers
// lowercase the text first, matching how every analysis in this package
// feeds it.
func (a *Analyzer) Tokenize(text string) []string {
	text = nonWordRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	words := strings.Fields(strings.TrimSpace(text))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, stop := a.vocab.Stopwords[strings.ToLower(word)]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// documentText is the text every corpus analysis tokenizes per document.
func documentText(title, content, summary string) string {
	return strings.ToLower(title + " " + content + " " + summary)
}
