package textsplit

import (
	"regexp"
	"strings"
	"unicode"
)

var numberedHeadingRe = regexp.MustCompile(`^\d+\.`)

// ExtractSectionTitle looks for a heading inside the chunk's span of the
// source text. A line qualifies when it is under 100 characters and is either
// all-uppercase, starts with a numbered-list marker, or is in title case.
// The first qualifying line of the first three is returned, otherwise the
// empty string.
//
// This is a best-effort heuristic: false negatives are acceptable.
func ExtractSectionTitle(text string, start, end int) string {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}

	lines := strings.Split(string(runes[start:end]), "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || runeLen(line) >= 100 {
			continue
		}
		if isUpper(line) || numberedHeadingRe.MatchString(line) || isTitle(line) {
			return line
		}
	}

	return ""
}

// isTitle reports whether every letter-initial word of s starts uppercase,
// with at least one such word.
func isTitle(s string) bool {
	hasCased := false
	for _, word := range strings.Fields(s) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		hasCased = true
	}
	return hasCased
}

// isUpper reports whether s contains at least one cased character and every
// cased character is uppercase.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
