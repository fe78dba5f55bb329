package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lexdoc/internal/queue"
	"lexdoc/internal/server/middleware"
	"lexdoc/pkg/common"
	"lexdoc/pkg/logger"
	"lexdoc/pkg/store"
	storepgx "lexdoc/pkg/store/pgx"
	"lexdoc/pkg/textsplit"
)

// Chunk rebuild parameters fall back to the service defaults when omitted.
const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

func chunkSizeOrDefault(size int) int {
	if size <= 0 {
		return defaultChunkSize
	}
	return size
}

func chunkOverlapOrDefault(overlap *int) int {
	if overlap == nil || *overlap < 0 {
		return defaultChunkOverlap
	}
	return *overlap
}

// RebuildChunksHandler re-chunks a document synchronously and reports the
// resulting chunk statistics. The rebuild runs under the same per-document
// lease the async worker uses, so the two paths never interleave.
func RebuildChunksHandler(c echo.Context) error {
	type rebuildChunksBody struct {
		ChunkSize         int    `json:"chunk_size"`
		ChunkOverlap      *int   `json:"chunk_overlap"`
		Strategy          string `json:"chunk_strategy"`
		PreserveStructure bool   `json:"preserve_structure"`
	}

	type rebuildChunksResponse struct {
		Message string             `json:"message"`
		Status  string             `json:"status,omitempty"`
		Result  *queue.ChunkResult `json:"result,omitempty"`
	}

	id := c.Param("id")
	data := new(rebuildChunksBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, rebuildChunksResponse{
			Message: "Invalid request body",
		})
	}

	switch textsplit.Strategy(data.Strategy) {
	case textsplit.StrategyRecursive, textsplit.StrategySentence, textsplit.StrategyParagraph, "":
	default:
		return c.JSON(http.StatusBadRequest, rebuildChunksResponse{
			Message: "Unknown chunk strategy",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	result, err := queue.ChunkDocument(ctx, app.DBConn, queue.ChunkMessage{
		DocumentID:        id,
		ChunkSize:         chunkSizeOrDefault(data.ChunkSize),
		ChunkOverlap:      chunkOverlapOrDefault(data.ChunkOverlap),
		Strategy:          data.Strategy,
		PreserveStructure: data.PreserveStructure,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, rebuildChunksResponse{
				Message: "Document not found",
			})
		case errors.Is(err, queue.ErrNoContent):
			return c.JSON(http.StatusBadRequest, rebuildChunksResponse{
				Message: "Document has no content to chunk",
			})
		default:
			logger.Error("Failed to rebuild chunks", "document", id, "err", err)
			return c.JSON(http.StatusInternalServerError, rebuildChunksResponse{
				Message: "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, rebuildChunksResponse{
		Message: "Chunks rebuilt",
		Status:  "completed",
		Result:  result,
	})
}

// GetChunksHandler returns a document's chunks in index order.
func GetChunksHandler(c echo.Context) error {
	type getChunksResponse struct {
		Message string         `json:"message"`
		Count   int            `json:"count"`
		Chunks  []common.Chunk `json:"chunks"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	if _, err := storage.GetDocument(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getChunksResponse{
				Message: "Document not found",
			})
		}
		logger.Error("Failed to load document", "document", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getChunksResponse{
			Message: "Internal server error",
		})
	}

	chunks, err := storage.GetChunks(ctx, id)
	if err != nil {
		logger.Error("Failed to load chunks", "document", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getChunksResponse{
			Message: "Internal server error",
		})
	}
	if chunks == nil {
		chunks = []common.Chunk{}
	}

	return c.JSON(http.StatusOK, getChunksResponse{
		Message: "OK",
		Count:   len(chunks),
		Chunks:  chunks,
	})
}

// DeleteChunksHandler enqueues deletion of a document's chunk set.
func DeleteChunksHandler(c echo.Context) error {
	type deleteChunksResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App

	msg, err := json.Marshal(queue.DeleteMessage{DocumentID: id})
	if err != nil {
		logger.Error("Failed to marshal delete message", "err", err)
		return c.JSON(http.StatusInternalServerError, deleteChunksResponse{
			Message: "Internal server error",
		})
	}
	if err := queue.PublishFIFO(app.Queue, queue.DeleteQueue, msg); err != nil {
		logger.Error("Failed to enqueue chunk deletion", "document", id, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteChunksResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, deleteChunksResponse{
		Message: "Chunk deletion queued",
	})
}
