package textsplit

import (
	"fmt"
	"regexp"
	"strings"

	"lexdoc/pkg/common"
)

// Strategy selects how a document is partitioned into chunks.
type Strategy string

const (
	StrategyRecursive Strategy = "recursive"
	StrategySentence  Strategy = "sentence"
	StrategyParagraph Strategy = "paragraph"
)

// Chunk type values stored on common.Chunk.Type.
const (
	ChunkTypeText           = "text"
	ChunkTypeSentenceGroup  = "sentence_group"
	ChunkTypeParagraphGroup = "paragraph_group"
)

// Options controls a split run. ChunkSize is a soft upper bound in characters
// on a chunk's content; ChunkOverlap is the number of trailing characters of a
// finished chunk carried into the next one (recursive strategy only, must be
// smaller than the closed chunk to take effect).
type Options struct {
	ChunkSize         int
	ChunkOverlap      int
	Strategy          Strategy
	PreserveStructure bool
}

// recursiveSeparators is tried in priority order; the empty separator is the
// character-by-character base case that guarantees termination.
var recursiveSeparators = []string{"\n\n", "\n", ". ", " ", ""}

var (
	sentenceEndRe = regexp.MustCompile(`[.!?]+(\s+|$)`)
	paragraphRe   = regexp.MustCompile(`\n\s*\n`)
)

// Split partitions text into ordered chunks according to opts. All lengths
// and offsets are counted in characters (runes), not bytes. Empty or
// whitespace-only input yields an empty chunk sequence, not an error.
//
// Note that the splitter itself does not lowercase or otherwise normalize the
// text; chunk content is the source text with surrounding whitespace trimmed.
func Split(text string, opts Options) ([]common.Chunk, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.ChunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", opts.ChunkOverlap)
	}

	var chunks []common.Chunk
	switch opts.Strategy {
	case StrategySentence:
		chunks = sentenceSplit(text, opts.ChunkSize)
	case StrategyParagraph:
		chunks = paragraphSplit(text, opts.ChunkSize)
	case StrategyRecursive, "":
		chunks = recursiveSplit(text, opts.ChunkSize, opts.ChunkOverlap)
	default:
		return nil, fmt.Errorf("unknown chunk strategy %q", opts.Strategy)
	}

	if opts.PreserveStructure {
		for i := range chunks {
			chunks[i].SectionTitle = ExtractSectionTitle(text, chunks[i].Start, chunks[i].End)
		}
	}

	return chunks, nil
}

// recursiveSplit tries the separator list in order, greedily packing split
// pieces into size-bounded buffers and re-splitting oversized results with
// the remaining separators.
func recursiveSplit(text string, size, overlap int) []common.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := splitRecursive(text, recursiveSeparators, size, overlap)

	chunks := make([]common.Chunk, 0, len(pieces))
	start := 0
	for i, piece := range pieces {
		end := start + runeLen(piece)
		content := strings.TrimSpace(piece)
		chunks = append(chunks, common.Chunk{
			Index:         i,
			Content:       content,
			ContentLength: runeLen(content),
			Start:         start,
			End:           end,
			Type:          ChunkTypeText,
		})
		// The next chunk re-reads the overlap window, so its start moves
		// back by the overlap unless the whole chunk was consumed by it.
		if overlap < runeLen(piece) {
			start = end - overlap
		} else {
			start = end
		}
	}

	return chunks
}

func splitRecursive(text string, separators []string, size, overlap int) []string {
	if len(separators) == 0 {
		return []string{text}
	}

	separator := separators[0]
	remaining := separators[1:]

	splits := splitWithSeparator(text, separator)
	if len(splits) == 1 {
		return splitRecursive(text, remaining, size, overlap)
	}

	merged := mergeSplits(splits, separator, size, overlap)

	var final []string
	for _, chunk := range merged {
		if runeLen(chunk) > size && len(remaining) > 0 {
			final = append(final, splitRecursive(chunk, remaining, size, overlap)...)
		} else {
			final = append(final, chunk)
		}
	}
	return final
}

func splitWithSeparator(text, separator string) []string {
	if separator == "" {
		runes := []rune(text)
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	}
	return strings.Split(text, separator)
}

// mergeSplits packs consecutive pieces into buffers bounded by size. When a
// buffer closes, the last overlap characters seed the next buffer.
func mergeSplits(splits []string, separator string, size, overlap int) []string {
	var merged []string
	current := ""

	for _, split := range splits {
		if runeLen(current)+runeLen(split)+runeLen(separator) <= size {
			if current != "" {
				current += separator + split
			} else {
				current = split
			}
			continue
		}

		if current != "" {
			merged = append(merged, current)
			if overlap > 0 && runeLen(current) > overlap {
				current = lastRunes(current, overlap) + separator + split
			} else {
				current = split
			}
		} else {
			// A single piece larger than the budget; carry it and let the
			// caller re-split with the remaining separators.
			current = split
		}
	}

	if current != "" {
		merged = append(merged, current)
	}
	return merged
}

// sentenceSplit groups sentences into size-bounded chunks joined with ". ".
// No overlap is applied.
func sentenceSplit(text string, size int) []common.Chunk {
	raw := sentenceEndRe.Split(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			sentences = append(sentences, t)
		}
	}

	var chunks []common.Chunk
	current := ""
	start := 0
	index := 0

	flush := func() {
		if current == "" {
			return
		}
		content := strings.TrimSpace(current)
		chunks = append(chunks, common.Chunk{
			Index:         index,
			Content:       content,
			ContentLength: runeLen(content),
			Start:         start,
			End:           start + runeLen(current),
			Type:          ChunkTypeSentenceGroup,
		})
		start += runeLen(current) + 2
		index++
	}

	for _, sentence := range sentences {
		// +2 accounts for the ". " joiner.
		if runeLen(current)+runeLen(sentence)+2 <= size {
			if current != "" {
				current += ". " + sentence
			} else {
				current = sentence
			}
		} else {
			flush()
			current = sentence
		}
	}
	if current != "" {
		content := strings.TrimSpace(current)
		chunks = append(chunks, common.Chunk{
			Index:         index,
			Content:       content,
			ContentLength: runeLen(content),
			Start:         start,
			End:           start + runeLen(current),
			Type:          ChunkTypeSentenceGroup,
		})
	}

	return chunks
}

// paragraphSplit groups blank-line-delimited paragraphs into size-bounded
// chunks joined with "\n\n". A single paragraph exceeding the budget is
// re-split with the recursive strategy (zero overlap) and its sub-chunks are
// shifted into the paragraph's offset range.
func paragraphSplit(text string, size int) []common.Chunk {
	raw := paragraphRe.Split(text, -1)
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}

	var chunks []common.Chunk
	current := ""
	start := 0
	index := 0

	flushCurrent := func() {
		if current == "" {
			return
		}
		content := strings.TrimSpace(current)
		chunks = append(chunks, common.Chunk{
			Index:         index,
			Content:       content,
			ContentLength: runeLen(content),
			Start:         start,
			End:           start + runeLen(current),
			Type:          ChunkTypeParagraphGroup,
		})
		start += runeLen(current) + 2
		index++
	}

	for _, paragraph := range paragraphs {
		if runeLen(current)+runeLen(paragraph)+2 <= size {
			if current != "" {
				current += "\n\n" + paragraph
			} else {
				current = paragraph
			}
			continue
		}

		flushCurrent()

		if runeLen(paragraph) > size {
			sub := recursiveSplit(paragraph, size, 0)
			for _, c := range sub {
				c.Index = index
				c.Start += start
				c.End += start
				chunks = append(chunks, c)
				index++
			}
			start += runeLen(paragraph) + 2
			current = ""
		} else {
			current = paragraph
		}
	}

	if current != "" {
		content := strings.TrimSpace(current)
		chunks = append(chunks, common.Chunk{
			Index:         index,
			Content:       content,
			ContentLength: runeLen(content),
			Start:         start,
			End:           start + runeLen(current),
			Type:          ChunkTypeParagraphGroup,
		})
	}

	return chunks
}

func runeLen(s string) int {
	return len([]rune(s))
}

func lastRunes(s string, n int) string {
	runes := []rune(s)
	if n >= len(runes) {
		return s
	}
	return string(runes[len(runes)-n:])
}
