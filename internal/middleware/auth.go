package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the key for the HTTP transport.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth validates the X-API-Key header against key. Used for the
// /mcp endpoint when serving over HTTP. An empty key disables the check.
func APIKeyAuth(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if key == "" {
			return next
		}
		return func(c echo.Context) error {
			got := c.Request().Header.Get(APIKeyHeader)
			if got == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing API key")
			}

			if !constantEqual(key, got) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}

// constantEqual provides constant-time string equality to avoid timing attacks.
func constantEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
