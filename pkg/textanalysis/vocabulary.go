package textanalysis

import "regexp"

// ConflictPair encodes a contradiction between two groups of terms: a text
// containing a restrictive term conflicts with a text containing one of the
// matching permissive terms, in either direction.
type ConflictPair struct {
	Restrictive []string
	Permissive  []string
}

// Vocabulary is the language- and jurisdiction-specific data the analyzer
// operates with. It is plain data so a different legal corpus can swap the
// word lists and reference patterns without touching the algorithms.
type Vocabulary struct {
	// Stopwords are dropped during tokenization (compared lowercase).
	Stopwords map[string]struct{}
	// LegalTerms is the domain vocabulary used to filter legal keywords.
	LegalTerms map[string]struct{}
	// ReferencePatterns extract legal-instrument identifiers from text. Each
	// pattern must expose the identifier as capture group 1.
	ReferencePatterns []*regexp.Regexp
	// ConflictPairs drive rule-based conflict detection.
	ConflictPairs []ConflictPair
	// ChangeKeywords mark documents that amend, replace or repeal others.
	ChangeKeywords []string
}

// DefaultVocabulary returns the Vietnamese legal vocabulary.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Stopwords: toSet([]string{
			"của", "và", "có", "là", "để", "trong", "với", "được", "các", "này", "đó",
			"theo", "về", "từ", "tại", "do", "bởi", "trên", "dưới", "cho",
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "as", "is", "are", "was", "were", "be",
		}),
		LegalTerms: toSet([]string{
			"luật", "pháp", "nghị định", "thông tư", "quyết định", "chỉ thị", "nghị quyết",
			"điều", "khoản", "điểm", "chương", "mục", "phần", "tiểu mục",
			"hình sự", "dân sự", "hành chính", "thương mại", "lao động",
			"tòa án", "thẩm phán", "luật sư", "kiểm sát", "công an",
			"vi phạm", "xử phạt", "án phạt", "tù", "phạt tiền",
			"hợp đồng", "thỏa thuận", "cam kết", "nghĩa vụ", "quyền lợi",
			"bồi thường", "thiệt hại", "tổn thất", "khiếu nại", "khiếu kiện",
			"quốc hội", "chính phủ", "thủ tướng", "bộ trưởng", "ủy ban",
		}),
		ReferencePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Luật\s+số\s+(\d+/\d+/[A-Z-]+)`),
			regexp.MustCompile(`(?i)Nghị định\s+số\s+(\d+/\d+/[A-Z-]+)`),
			regexp.MustCompile(`(?i)Thông tư\s+số\s+(\d+/\d+/[A-Z-]+)`),
			regexp.MustCompile(`(?i)Quyết định\s+số\s+(\d+/\d+/[A-Z-]+)`),
			regexp.MustCompile(`(\d+/\d+/[A-Z-]+)`),
		},
		ConflictPairs: []ConflictPair{
			// Prohibition vs permission.
			{
				Restrictive: []string{"không được", "cấm", "bị cấm"},
				Permissive:  []string{"được phép", "cho phép", "được quyền"},
			},
			// Mandatory vs optional.
			{
				Restrictive: []string{"phải", "bắt buộc", "cần thiết"},
				Permissive:  []string{"có thể", "tự nguyện", "tùy chọn"},
			},
			// Minimum vs maximum quantities.
			{
				Restrictive: []string{"tối thiểu", "ít nhất"},
				Permissive:  []string{"tối đa", "nhiều nhất"},
			},
			// Immediate vs deferred timing.
			{
				Restrictive: []string{"ngay lập tức", "tức thì"},
				Permissive:  []string{"trong thời hạn", "chậm nhất"},
			},
		},
		ChangeKeywords: []string{
			"sửa đổi", "bổ sung", "thay thế", "bãi bỏ", "hủy bỏ",
			"ban hành", "công bố", "có hiệu lực", "ngừng hiệu lực",
			"điều chỉnh", "cập nhật", "hoàn thiện", "tăng cường",
		},
	}
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
