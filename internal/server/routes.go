package server

import (
	"github.com/labstack/echo/v4"

	"lexdoc/internal/server/middleware"
	"lexdoc/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Document routes
	apiRoutes.GET("/documents", routes.GetDocumentsHandler)
	apiRoutes.POST("/documents", routes.CreateDocumentHandler)
	apiRoutes.GET("/documents/:id", routes.GetDocumentHandler)
	apiRoutes.DELETE("/documents/:id", routes.DeleteDocumentHandler)

	// Chunk routes
	apiRoutes.GET("/documents/:id/chunks", routes.GetChunksHandler)
	apiRoutes.POST("/documents/:id/chunks", routes.RebuildChunksHandler)
	apiRoutes.DELETE("/documents/:id/chunks", routes.DeleteChunksHandler)

	// Analysis routes
	apiRoutes.GET("/analysis/term-frequency", routes.TermFrequencyHandler)
	apiRoutes.GET("/analysis/keywords", routes.KeywordsHandler)
	apiRoutes.GET("/analysis/citations", routes.CitationsHandler)
	apiRoutes.POST("/analysis/clusters", routes.ClustersHandler)
	apiRoutes.GET("/analysis/conflicts/:id", routes.ConflictsHandler)
	apiRoutes.GET("/analysis/timeline", routes.TimelineHandler)
}
