package textsplit

import (
	"reflect"
	"strings"
	"testing"

	"lexdoc/pkg/common"
)

func TestSplitValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "zero chunk size", opts: Options{ChunkSize: 0}},
		{name: "negative chunk size", opts: Options{ChunkSize: -10}},
		{name: "negative overlap", opts: Options{ChunkSize: 100, ChunkOverlap: -1}},
		{name: "unknown strategy", opts: Options{ChunkSize: 100, Strategy: "semantic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split("some text", tt.opts); err == nil {
				t.Errorf("Split(%+v) expected error, got nil", tt.opts)
			}
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	for _, strategy := range []Strategy{StrategyRecursive, StrategySentence, StrategyParagraph} {
		t.Run(string(strategy), func(t *testing.T) {
			chunks, err := Split("   \n\n  ", Options{ChunkSize: 100, Strategy: strategy})
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(chunks) != 0 {
				t.Errorf("Split() on whitespace input = %d chunks, want 0", len(chunks))
			}
		})
	}
}

func TestSplitRecursive(t *testing.T) {
	chunks, err := Split("aaa bbb ccc ddd", Options{ChunkSize: 7, Strategy: StrategyRecursive})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	want := []common.Chunk{
		{Index: 0, Content: "aaa bbb", ContentLength: 7, Start: 0, End: 7, Type: ChunkTypeText},
		{Index: 1, Content: "ccc ddd", ContentLength: 7, Start: 7, End: 14, Type: ChunkTypeText},
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("Split() = %+v, want %+v", chunks, want)
	}
}

func TestSplitRecursiveOverlap(t *testing.T) {
	chunks, err := Split("aaa bbb ccc ddd", Options{ChunkSize: 7, ChunkOverlap: 3, Strategy: StrategyRecursive})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}
	wantContents := []string{"aaa bbb", "bbb ccc", "ccc ddd"}
	if !reflect.DeepEqual(contents, wantContents) {
		t.Fatalf("Split() contents = %v, want %v", contents, wantContents)
	}

	// Every chunk after the first starts with the previous chunk's suffix.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		suffix := string(prev[len(prev)-3:])
		if !strings.HasPrefix(chunks[i].Content, suffix) {
			t.Errorf("chunk %d content %q does not start with overlap %q", i, chunks[i].Content, suffix)
		}
	}

	// Start positions move back by the overlap.
	if chunks[1].Start != chunks[0].End-3 {
		t.Errorf("chunk 1 start = %d, want %d", chunks[1].Start, chunks[0].End-3)
	}
}

func TestSplitRecursiveSizeBound(t *testing.T) {
	text := strings.Repeat("Điều khoản thi hành quy định chi tiết về xử phạt vi phạm hành chính. ", 20)

	for _, size := range []int{30, 80, 200} {
		chunks, err := Split(text, Options{ChunkSize: size, ChunkOverlap: 10, Strategy: StrategyRecursive})
		if err != nil {
			t.Fatalf("Split() error = %v", err)
		}
		if len(chunks) == 0 {
			t.Fatal("Split() produced no chunks")
		}
		for _, c := range chunks {
			if c.ContentLength > size {
				t.Errorf("chunk %d length %d exceeds size %d: %q", c.Index, c.ContentLength, size, c.Content)
			}
		}
	}
}

func TestSplitIndicesContiguous(t *testing.T) {
	text := strings.Repeat("one two three four five six seven eight nine ten. ", 10)
	chunks, err := Split(text, Options{ChunkSize: 40, ChunkOverlap: 5, Strategy: StrategyRecursive})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk at position %d has index %d", i, c.Index)
		}
	}
}

func TestSplitIdempotent(t *testing.T) {
	text := "Điều 1. Phạm vi điều chỉnh.\n\nNghị định này quy định chi tiết thi hành một số điều của Luật Thương mại về hoạt động xuất khẩu, nhập khẩu."
	opts := Options{ChunkSize: 50, ChunkOverlap: 10, Strategy: StrategyRecursive, PreserveStructure: true}

	first, err := Split(text, opts)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	second, err := Split(text, opts)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Split() differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSplitSentences(t *testing.T) {
	chunks, err := Split("One sentence here. Another sentence follows! Third one?", Options{ChunkSize: 50, Strategy: StrategySentence})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	want := []common.Chunk{
		{Index: 0, Content: "One sentence here. Another sentence follows", ContentLength: 43, Start: 0, End: 43, Type: ChunkTypeSentenceGroup},
		{Index: 1, Content: "Third one", ContentLength: 9, Start: 45, End: 54, Type: ChunkTypeSentenceGroup},
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("Split() = %+v, want %+v", chunks, want)
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "Điều 1. Không được xuất khẩu hàng cấm.\n\nĐiều 2. Được phép xuất khẩu sau khi cấp phép."
	chunks, err := Split(text, Options{ChunkSize: 60, Strategy: StrategyParagraph})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("Split() = %d chunks, want 2", len(chunks))
	}
	wantContents := []string{
		"Điều 1. Không được xuất khẩu hàng cấm.",
		"Điều 2. Được phép xuất khẩu sau khi cấp phép.",
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d index = %d", i, c.Index)
		}
		if c.Type != ChunkTypeParagraphGroup {
			t.Errorf("chunk %d type = %q, want %q", i, c.Type, ChunkTypeParagraphGroup)
		}
		if c.Content != wantContents[i] {
			t.Errorf("chunk %d content = %q, want %q", i, c.Content, wantContents[i])
		}
		if c.ContentLength > 60 {
			t.Errorf("chunk %d length %d exceeds size 60", i, c.ContentLength)
		}
	}
}

func TestSplitParagraphsOversized(t *testing.T) {
	text := "short one\n\nword word word word word"
	chunks, err := Split(text, Options{ChunkSize: 15, Strategy: StrategyParagraph})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	want := []common.Chunk{
		{Index: 0, Content: "short one", ContentLength: 9, Start: 0, End: 9, Type: ChunkTypeParagraphGroup},
		{Index: 1, Content: "word word word", ContentLength: 14, Start: 11, End: 25, Type: ChunkTypeText},
		{Index: 2, Content: "word word", ContentLength: 9, Start: 25, End: 34, Type: ChunkTypeText},
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("Split() = %+v, want %+v", chunks, want)
	}
}

func TestSplitPreserveStructure(t *testing.T) {
	text := "PHẠM VI ĐIỀU CHỈNH\nNghị định này quy định về hoạt động thương mại."
	chunks, err := Split(text, Options{ChunkSize: 200, Strategy: StrategyRecursive, PreserveStructure: true})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("Split() produced no chunks")
	}
	if chunks[0].SectionTitle != "PHẠM VI ĐIỀU CHỈNH" {
		t.Errorf("section title = %q, want %q", chunks[0].SectionTitle, "PHẠM VI ĐIỀU CHỈNH")
	}
}
