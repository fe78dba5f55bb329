package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/errgroup"

	"lexdoc/internal/util"
	"lexdoc/pkg/common"
	"lexdoc/pkg/leaselock"
	"lexdoc/pkg/logger"
	storepgx "lexdoc/pkg/store/pgx"
	"lexdoc/pkg/textsplit"
)

const tokenEncoding = "o200k_base"

// ErrNoContent marks a document whose content is empty and cannot be chunked.
var ErrNoContent = errors.New("document has no content to chunk")

// ChunkResult summarizes one chunk rebuild.
type ChunkResult struct {
	ChunksCreated    int   `json:"chunks_created"`
	TotalCharacters  int   `json:"total_characters"`
	AverageChunkSize int   `json:"average_chunk_size"`
	TokenCount       int   `json:"token_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// ChunkDocument rebuilds the chunk set for one document. The rebuild holds a
// per-document lease so two writers never interleave a delete-then-insert on
// the same document.
func ChunkDocument(ctx context.Context, conn *pgxpool.Pool, msg ChunkMessage) (*ChunkResult, error) {
	storage := storepgx.NewDocumentDBStorage(conn)
	lockClient := leaselock.New(conn)

	result := new(ChunkResult)
	err := lockClient.WithLease(ctx, "document:"+msg.DocumentID, leaselock.Options{
		TTL:        2 * time.Minute,
		RenewEvery: 45 * time.Second,
		Wait:       true,
	}, func(ctx context.Context) error {
		doc, err := storage.GetDocument(ctx, msg.DocumentID)
		if err != nil {
			return err
		}
		if doc.Content == "" {
			return fmt.Errorf("document %s: %w", doc.ID, ErrNoContent)
		}

		start := time.Now()
		chunks, err := textsplit.Split(doc.Content, textsplit.Options{
			ChunkSize:         msg.ChunkSize,
			ChunkOverlap:      msg.ChunkOverlap,
			Strategy:          textsplit.Strategy(msg.Strategy),
			PreserveStructure: msg.PreserveStructure,
		})
		if err != nil {
			return fmt.Errorf("split document %s: %w", doc.ID, err)
		}

		for i := range chunks {
			chunks[i].DocumentID = doc.ID
			chunks[i].Content = util.SanitizePostgresText(chunks[i].Content)
		}

		if err := countTokens(ctx, chunks); err != nil {
			return err
		}

		if err := storage.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
			return err
		}

		totalCharacters := 0
		totalTokens := 0
		for _, c := range chunks {
			totalCharacters += c.ContentLength
			totalTokens += c.TokenCount
		}

		result.ChunksCreated = len(chunks)
		result.TotalCharacters = totalCharacters
		result.TokenCount = totalTokens
		result.ProcessingTimeMs = time.Since(start).Milliseconds()
		if len(chunks) > 0 {
			result.AverageChunkSize = totalCharacters / len(chunks)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessChunkMessage handles an async chunk job from the queue.
func ProcessChunkMessage(ctx context.Context, conn *pgxpool.Pool, msg string) error {
	data := new(ChunkMessage)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}
	if data.DocumentID == "" {
		return fmt.Errorf("chunk message without document id")
	}

	result, err := ChunkDocument(ctx, conn, *data)
	if err != nil {
		return err
	}

	logger.Info("[Queue] Document chunked",
		"document", data.DocumentID,
		"strategy", data.Strategy,
		"chunks", result.ChunksCreated,
		"tokens", result.TokenCount,
		"duration_ms", result.ProcessingTimeMs,
	)
	return nil
}

// countTokens fills TokenCount on every chunk, encoding in parallel.
func countTokens(ctx context.Context, chunks []common.Chunk) error {
	encoder, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return fmt.Errorf("load token encoding: %w", err)
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i := range chunks {
		eg.Go(func() error {
			chunks[i].TokenCount = len(encoder.Encode(chunks[i].Content, nil, nil))
			return nil
		})
	}
	return eg.Wait()
}

// ProcessDeleteMessage drops a document's chunk set under the same
// per-document lease the rebuild path uses.
func ProcessDeleteMessage(ctx context.Context, conn *pgxpool.Pool, msg string) error {
	data := new(DeleteMessage)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}
	if data.DocumentID == "" {
		return fmt.Errorf("delete message without document id")
	}

	storage := storepgx.NewDocumentDBStorage(conn)
	lockClient := leaselock.New(conn)

	return lockClient.WithLease(ctx, "document:"+data.DocumentID, leaselock.Options{
		TTL:        time.Minute,
		RenewEvery: 20 * time.Second,
		Wait:       true,
	}, func(ctx context.Context) error {
		if err := storage.DeleteChunks(ctx, data.DocumentID); err != nil {
			return err
		}
		logger.Info("[Queue] Chunk set deleted", "document", data.DocumentID)
		return nil
	})
}
