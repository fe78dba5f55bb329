package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lexdoc/internal/server/middleware"
	"lexdoc/pkg/common"
	"lexdoc/pkg/logger"
	"lexdoc/pkg/store"
	storepgx "lexdoc/pkg/store/pgx"
)

// GetDocumentsHandler lists documents, optionally filtered by category.
func GetDocumentsHandler(c echo.Context) error {
	type getDocumentsResponse struct {
		Message   string            `json:"message"`
		Count     int               `json:"count"`
		Documents []common.Document `json:"documents"`
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, getDocumentsResponse{
				Message: "Invalid limit",
			})
		}
		limit = parsed
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	docs, err := storage.ListDocuments(ctx, store.DocumentFilter{
		Category: c.QueryParam("category"),
		Limit:    limit,
	})
	if err != nil {
		logger.Error("Failed to list documents", "err", err)
		return c.JSON(http.StatusInternalServerError, getDocumentsResponse{
			Message: "Internal server error",
		})
	}
	if docs == nil {
		docs = []common.Document{}
	}

	return c.JSON(http.StatusOK, getDocumentsResponse{
		Message:   "OK",
		Count:     len(docs),
		Documents: docs,
	})
}

// GetDocumentHandler returns a single document by ID.
func GetDocumentHandler(c echo.Context) error {
	type getDocumentResponse struct {
		Message  string           `json:"message"`
		Document *common.Document `json:"document,omitempty"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	doc, err := storage.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getDocumentResponse{
				Message: "Document not found",
			})
		}
		logger.Error("Failed to load document", "document", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getDocumentResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getDocumentResponse{
		Message:  "OK",
		Document: &doc,
	})
}
