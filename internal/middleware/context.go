package middleware

import (
	"github.com/labstack/echo/v4"

	"winsbygroup.com/flexmcp/internal/version"
)

// VersionHeader is set on every HTTP response.
const VersionHeader = "X-Flexmcp-Version"

// Version adds the app version to the response headers.
func Version() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(VersionHeader, version.Version)
			return next(c)
		}
	}
}
