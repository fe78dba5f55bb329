package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lexdoc/internal/server/middleware"
	"lexdoc/pkg/logger"
	"lexdoc/pkg/store"
	storepgx "lexdoc/pkg/store/pgx"
)

// DeleteDocumentHandler removes a document and its chunks.
func DeleteDocumentHandler(c echo.Context) error {
	type deleteDocumentResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	if err := storage.DeleteDocument(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, deleteDocumentResponse{
				Message: "Document not found",
			})
		}
		logger.Error("Failed to delete document", "document", id, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteDocumentResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteDocumentResponse{
		Message: "Document deleted",
	})
}
