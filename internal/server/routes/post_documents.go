package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lexdoc/internal/queue"
	"lexdoc/internal/server/middleware"
	"lexdoc/internal/util"
	"lexdoc/pkg/common"
	"lexdoc/pkg/logger"
	storepgx "lexdoc/pkg/store/pgx"
)

// CreateDocumentHandler stores a new document and, unless disabled, enqueues
// an initial chunk rebuild for it.
func CreateDocumentHandler(c echo.Context) error {
	type createDocumentBody struct {
		Title          string   `json:"title" validate:"required"`
		Content        string   `json:"content" validate:"required"`
		Summary        string   `json:"summary"`
		Category       string   `json:"category"`
		DocumentNumber string   `json:"document_number"`
		IssuingAgency  string   `json:"issuing_agency"`
		IssueDate      string   `json:"issue_date"`
		References     []string `json:"references"`

		SkipChunking      bool   `json:"skip_chunking"`
		ChunkSize         int    `json:"chunk_size"`
		ChunkOverlap      *int   `json:"chunk_overlap"`
		Strategy          string `json:"chunk_strategy"`
		PreserveStructure bool   `json:"preserve_structure"`
	}

	type createDocumentResponse struct {
		Message  string           `json:"message"`
		Document *common.Document `json:"document,omitempty"`
	}

	data := new(createDocumentBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createDocumentResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createDocumentResponse{
			Message: "Invalid request body",
		})
	}

	var issueDate time.Time
	if data.IssueDate != "" {
		parsed, err := time.Parse("2006-01-02", data.IssueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, createDocumentResponse{
				Message: "Invalid issue_date, expected YYYY-MM-DD",
			})
		}
		issueDate = parsed
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	doc, err := storage.CreateDocument(ctx, common.Document{
		Title:          util.SanitizePostgresText(data.Title),
		Content:        util.SanitizePostgresText(data.Content),
		Summary:        util.SanitizePostgresText(data.Summary),
		Category:       data.Category,
		DocumentNumber: data.DocumentNumber,
		IssuingAgency:  data.IssuingAgency,
		IssueDate:      issueDate,
		References:     data.References,
	})
	if err != nil {
		logger.Error("Failed to create document", "err", err)
		return c.JSON(http.StatusInternalServerError, createDocumentResponse{
			Message: "Internal server error",
		})
	}

	if !data.SkipChunking {
		msg, err := json.Marshal(queue.ChunkMessage{
			DocumentID:        doc.ID,
			ChunkSize:         chunkSizeOrDefault(data.ChunkSize),
			ChunkOverlap:      chunkOverlapOrDefault(data.ChunkOverlap),
			Strategy:          data.Strategy,
			PreserveStructure: data.PreserveStructure,
		})
		if err != nil {
			logger.Error("Failed to marshal chunk message", "err", err)
			return c.JSON(http.StatusInternalServerError, createDocumentResponse{
				Message: "Internal server error",
			})
		}
		if err := queue.PublishFIFO(app.Queue, queue.ChunkQueue, msg); err != nil {
			logger.Error("Failed to enqueue chunk job", "document", doc.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, createDocumentResponse{
				Message: "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusCreated, createDocumentResponse{
		Message:  "Document created",
		Document: &doc,
	})
}
