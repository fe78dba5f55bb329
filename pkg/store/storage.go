package store

import (
	"context"
	"errors"
	"time"

	"lexdoc/pkg/common"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// DocumentFilter narrows ListDocuments. Zero values mean "no constraint";
// Limit <= 0 falls back to the implementation's default cap.
type DocumentFilter struct {
	Category string
	Since    time.Time
	Limit    int
}

// DocumentStorage persists documents and their chunk sets.
//
// Chunk writes are replace-all at document granularity: ReplaceChunks discards
// any existing set in the same transaction that inserts the new one. Callers
// serialize concurrent rebuilds of the same document themselves (the queue
// worker holds a per-document lease while writing).
type DocumentStorage interface {
	CreateDocument(ctx context.Context, doc common.Document) (common.Document, error)
	GetDocument(ctx context.Context, id string) (common.Document, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]common.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	ReplaceChunks(ctx context.Context, documentID string, chunks []common.Chunk) error
	GetChunks(ctx context.Context, documentID string) ([]common.Chunk, error)
	DeleteChunks(ctx context.Context, documentID string) error
}
