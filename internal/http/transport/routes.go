package transport

import (
	"github.com/labstack/echo/v4"
)

// Path is where the streamable MCP endpoint is mounted.
const Path = "/mcp"

// RegisterRoutes wires the MCP endpoint under the given Echo group.
// The streamable transport uses POST for messages, GET for the event stream
// and DELETE to end a session, so all methods go to the same handler.
func RegisterRoutes(g *echo.Group, h *Handler, apiKeyAuth echo.MiddlewareFunc) {
	g.Any(Path, h.Serve, apiKeyAuth)
}
