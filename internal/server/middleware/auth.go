package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware gates the API behind the master API key, presented in the
// X-API-Key header.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		app := c.(*AppContext).App
		if app.MasterAPIKey == "" {
			return echo.NewHTTPError(http.StatusInternalServerError, "API key not configured")
		}

		provided := c.Request().Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(app.MasterAPIKey)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid API key")
		}
		return next(c)
	}
}
