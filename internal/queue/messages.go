package queue

// ChunkMessage asks the worker to rebuild a document's chunk set.
type ChunkMessage struct {
	DocumentID        string `json:"document_id"`
	ChunkSize         int    `json:"chunk_size"`
	ChunkOverlap      int    `json:"chunk_overlap"`
	Strategy          string `json:"strategy"`
	PreserveStructure bool   `json:"preserve_structure"`
}

// DeleteMessage asks the worker to drop a document's chunk set.
type DeleteMessage struct {
	DocumentID string `json:"document_id"`
}
