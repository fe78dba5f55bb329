package textanalysis

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "stop words dropped",
			text: "của và luật thương mại",
			want: []string{"luật", "thương", "mại"},
		},
		{
			name: "short tokens dropped",
			text: "ab abc a xy xyz",
			want: []string{"abc", "xyz"},
		},
		{
			name: "punctuation stripped",
			text: "điều 15, khoản 2! (nghị định)",
			want: []string{"điều", "khoản", "nghị", "định"},
		},
		{
			name: "whitespace collapsed",
			text: "xuất   khẩu\n\nhàng    hóa",
			want: []string{"xuất", "khẩu", "hàng", "hóa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewAnalyzerDefaultVocabulary(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	if analyzer.vocab == nil {
		t.Fatal("nil vocabulary not replaced with default")
	}
	if len(analyzer.vocab.Stopwords) == 0 || len(analyzer.vocab.ReferencePatterns) == 0 {
		t.Error("default vocabulary is missing data")
	}
}
