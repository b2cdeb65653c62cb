package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler exposes one MCP server over the streamable HTTP transport.
type Handler struct {
	mcp http.Handler
}

func NewHandler(s *mcp.Server) *Handler {
	return &Handler{
		mcp: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s }, nil),
	}
}

// Serve hands the request to the SDK. Session tracking lives in the SDK
// handler, keyed by the Mcp-Session-Id header.
//
// GET opens the server-to-client event stream, which stays open for the
// whole session, so the server's WriteTimeout is lifted for it.
func (h *Handler) Serve(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		rc := http.NewResponseController(c.Response())
		if err := rc.SetWriteDeadline(time.Time{}); err != nil {
			c.Logger().Warnf("event stream keeps server write timeout: %v", err)
		}
	}
	h.mcp.ServeHTTP(c.Response(), c.Request())
	return nil
}
