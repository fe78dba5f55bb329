package routes

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"lexdoc/internal/server/middleware"
	"lexdoc/pkg/logger"
	"lexdoc/pkg/store"
	storepgx "lexdoc/pkg/store/pgx"
	"lexdoc/pkg/textanalysis"
)

func queryInt(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// TermFrequencyHandler computes corpus-wide term statistics.
func TermFrequencyHandler(c echo.Context) error {
	type termFrequencyResponse struct {
		Message string                            `json:"message"`
		Report  *textanalysis.TermFrequencyReport `json:"report,omitempty"`
	}

	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		return c.JSON(http.StatusBadRequest, termFrequencyResponse{Message: "Invalid limit"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	docs, err := storage.ListDocuments(ctx, store.DocumentFilter{Category: c.QueryParam("category")})
	if err != nil {
		logger.Error("Failed to list documents for term analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, termFrequencyResponse{Message: "Internal server error"})
	}

	analyzer := textanalysis.NewAnalyzer(nil)
	return c.JSON(http.StatusOK, termFrequencyResponse{
		Message: "OK",
		Report:  analyzer.TermFrequency(docs, limit),
	})
}

// KeywordsHandler extracts scored keywords and key phrases from the corpus.
func KeywordsHandler(c echo.Context) error {
	type keywordsResponse struct {
		Message string                      `json:"message"`
		Report  *textanalysis.KeywordReport `json:"report,omitempty"`
	}

	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return c.JSON(http.StatusBadRequest, keywordsResponse{Message: "Invalid limit"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	docs, err := storage.ListDocuments(ctx, store.DocumentFilter{Category: c.QueryParam("category")})
	if err != nil {
		logger.Error("Failed to list documents for keyword analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, keywordsResponse{Message: "Internal server error"})
	}

	analyzer := textanalysis.NewAnalyzer(nil)
	return c.JSON(http.StatusOK, keywordsResponse{
		Message: "OK",
		Report:  analyzer.ExtractKeywords(docs, limit),
	})
}

// CitationsHandler builds the corpus citation network.
func CitationsHandler(c echo.Context) error {
	type citationsResponse struct {
		Message string                        `json:"message"`
		Network *textanalysis.CitationNetwork `json:"network,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	docs, err := storage.ListDocuments(ctx, store.DocumentFilter{})
	if err != nil {
		logger.Error("Failed to list documents for citation analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, citationsResponse{Message: "Internal server error"})
	}

	analyzer := textanalysis.NewAnalyzer(nil)
	return c.JSON(http.StatusOK, citationsResponse{
		Message: "OK",
		Network: analyzer.BuildCitationNetwork(docs),
	})
}

// ClustersHandler partitions the corpus into k clusters. A seed makes the
// run reproducible.
func ClustersHandler(c echo.Context) error {
	type clustersBody struct {
		K        int     `json:"k" validate:"required,min=1"`
		Category string  `json:"category"`
		Seed     *uint64 `json:"seed"`
	}

	type clustersResponse struct {
		Message string                      `json:"message"`
		Report  *textanalysis.ClusterReport `json:"report,omitempty"`
	}

	data := new(clustersBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, clustersResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, clustersResponse{Message: "Invalid request body"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	docs, err := storage.ListDocuments(ctx, store.DocumentFilter{Category: data.Category})
	if err != nil {
		logger.Error("Failed to list documents for clustering", "err", err)
		return c.JSON(http.StatusInternalServerError, clustersResponse{Message: "Internal server error"})
	}
	if len(docs) == 0 {
		return c.JSON(http.StatusOK, clustersResponse{
			Message: "No documents to cluster",
		})
	}

	var rng *rand.Rand
	if data.Seed != nil {
		rng = rand.New(rand.NewPCG(*data.Seed, *data.Seed))
	}

	analyzer := textanalysis.NewAnalyzer(nil)
	report, err := analyzer.ClusterDocuments(docs, data.K, rng)
	if err != nil {
		return c.JSON(http.StatusBadRequest, clustersResponse{Message: "Invalid cluster count"})
	}

	return c.JSON(http.StatusOK, clustersResponse{
		Message: "OK",
		Report:  report,
	})
}

// ConflictsHandler scans one document against related documents for
// contradictory provisions.
func ConflictsHandler(c echo.Context) error {
	type conflictsResponse struct {
		Message string                       `json:"message"`
		Report  *textanalysis.ConflictReport `json:"report,omitempty"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	target, err := storage.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, conflictsResponse{Message: "Document not found"})
		}
		logger.Error("Failed to load document for conflict scan", "document", id, "err", err)
		return c.JSON(http.StatusInternalServerError, conflictsResponse{Message: "Internal server error"})
	}

	// Candidates share the target's category; a document without a category
	// is compared against the whole corpus.
	candidates, err := storage.ListDocuments(ctx, store.DocumentFilter{
		Category: target.Category,
		Limit:    100,
	})
	if err != nil {
		logger.Error("Failed to list candidate documents", "err", err)
		return c.JSON(http.StatusInternalServerError, conflictsResponse{Message: "Internal server error"})
	}

	analyzer := textanalysis.NewAnalyzer(nil)
	return c.JSON(http.StatusOK, conflictsResponse{
		Message: "OK",
		Report:  analyzer.DetectConflicts(target, candidates),
	})
}

// TimelineHandler reports regulatory change activity over time for a
// category.
func TimelineHandler(c echo.Context) error {
	type timelineResponse struct {
		Message string                       `json:"message"`
		Report  *textanalysis.TimelineReport `json:"report,omitempty"`
	}

	yearsBack, err := queryInt(c, "years_back", 10)
	if err != nil || yearsBack < 1 {
		return c.JSON(http.StatusBadRequest, timelineResponse{Message: "Invalid years_back"})
	}
	category := c.QueryParam("category")

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	storage := storepgx.NewDocumentDBStorage(app.DBConn)

	docs, err := storage.ListDocuments(ctx, store.DocumentFilter{
		Category: category,
		Since:    time.Now().UTC().AddDate(-yearsBack, 0, 0),
	})
	if err != nil {
		logger.Error("Failed to list documents for timeline analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, timelineResponse{Message: "Internal server error"})
	}

	analyzer := textanalysis.NewAnalyzer(nil)
	return c.JSON(http.StatusOK, timelineResponse{
		Message: "OK",
		Report:  analyzer.AnalyzeTimeline(category, docs, yearsBack),
	})
}
