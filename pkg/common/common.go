package common

import "time"

// Document represents a stored legal document. The content is the full
// extracted text; Summary and the issuing metadata are optional and treated
// as empty when absent.
//
// Documents are the unit of chunking and the records every corpus-level
// analysis (term statistics, clustering, citation and conflict scans)
// operates on.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Summary        string    `json:"summary,omitempty"`
	Category       string    `json:"category,omitempty"`
	DocumentNumber string    `json:"document_number,omitempty"`
	IssuingAgency  string    `json:"issuing_agency,omitempty"`
	IssueDate      time.Time `json:"issue_date,omitempty"`
	References     []string  `json:"references,omitempty"`
	DateCreated    time.Time `json:"date_created,omitempty"`
}

// Chunk is a bounded-size contiguous slice of a document's text prepared for
// retrieval. Chunks of a document are totally ordered by Index; Start and End
// are character offsets into the source text. Overlapping strategies make the
// next chunk's Start smaller than the previous chunk's End.
//
// Chunk sets are written with replace-all semantics: re-chunking a document
// discards the prior set and inserts the new batch as a unit.
type Chunk struct {
	DocumentID    string `json:"document_id"`
	Index         int    `json:"chunk_index"`
	Content       string `json:"content"`
	ContentLength int    `json:"content_length"`
	Start         int    `json:"start_position"`
	End           int    `json:"end_position"`
	Type          string `json:"chunk_type"`
	SectionTitle  string `json:"section_title,omitempty"`
	TokenCount    int    `json:"token_count,omitempty"`
}
