package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lexdoc/pkg/common"
	"lexdoc/pkg/logger"
	"lexdoc/pkg/store"
)

const chunkInsertBatchSize = 1000

// ReplaceChunks swaps a document's chunk set in one transaction: the old set
// is deleted and the new one inserted in batches. Readers never observe a
// partial set.
func (s *DocumentDBStorage) ReplaceChunks(ctx context.Context, documentID string, chunks []common.Chunk) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM document_chunks WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete previous chunks: %w", err)
	}

	err = store.ChunkRange(len(chunks), chunkInsertBatchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, c := range chunks[start:end] {
			batch.Queue(`
				INSERT INTO document_chunks (document_id, chunk_index, content, content_length, start_position, end_position, chunk_type, section_title, token_count)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				documentID, c.Index, c.Content, c.ContentLength,
				c.Start, c.End, c.Type, c.SectionTitle, c.TokenCount,
			)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range end - start {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("insert chunk: %w", err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Debug("[Store][ReplaceChunks] Chunk set replaced", "document", documentID, "chunks", len(chunks))
	return nil
}

// GetChunks returns a document's chunks ordered by index.
func (s *DocumentDBStorage) GetChunks(ctx context.Context, documentID string) ([]common.Chunk, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT document_id, chunk_index, content, content_length, start_position, end_position, chunk_type, section_title, token_count
		FROM document_chunks
		WHERE document_id = $1
		ORDER BY chunk_index`, documentID)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}
	defer rows.Close()

	var chunks []common.Chunk
	for rows.Next() {
		var c common.Chunk
		var sectionTitle *string
		if err := rows.Scan(&c.DocumentID, &c.Index, &c.Content, &c.ContentLength, &c.Start, &c.End, &c.Type, &sectionTitle, &c.TokenCount); err != nil {
			return nil, err
		}
		c.SectionTitle = deref(sectionTitle)
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (s *DocumentDBStorage) DeleteChunks(ctx context.Context, documentID string) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM document_chunks WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	return nil
}
