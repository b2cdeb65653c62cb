package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "winsbygroup.com/flexmcp/internal/middleware"

	"winsbygroup.com/flexmcp/internal/config"
	"winsbygroup.com/flexmcp/internal/fortiflex"
	"winsbygroup.com/flexmcp/internal/tools"
	"winsbygroup.com/flexmcp/internal/version"

	transporthttp "winsbygroup.com/flexmcp/internal/http/transport"
)

type Server struct {
	MCP    *mcp.Server
	Echo   *echo.Echo
	HTTP   *http.Server
	Client *fortiflex.Client
}

func Build(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	//
	// Credentials are optional at startup: tool calls may pass their own
	// token or credentials, so only warn here.
	//
	creds := cfg.Credentials()
	if !hasCredentials(creds) {
		logger.Warn().
			Str("user_env", config.EnvAPIUser).
			Str("password_env", config.EnvAPIPassword).
			Msg("FortiFlex credentials not configured; token generation needs explicit api_user/api_password")
	}
	logger.Info().
		Str("source", cfg.Source).
		Int64("account_id", creds.AccountID).
		Str("program_sn", creds.ProgramSN).
		Msg("configuration loaded")

	//
	// FortiFlex client
	//
	client := fortiflex.New(creds, fortiflex.Options{
		APIBaseURI: cfg.APIBaseURI,
		AuthURI:    cfg.AuthURI,
		ClientID:   cfg.ClientID,
		Timeout:    cfg.RequestTimeout,
		Logger:     logger,
	})

	//
	// MCP server + tools
	//
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: version.Name, Version: version.Version}, nil)
	tools.RegisterTools(mcpServer, tools.NewHandler(client, logger))

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		if !hasCredentials(creds) {
			return c.String(http.StatusServiceUnavailable, "FortiFlex credentials not configured")
		}
		return c.String(http.StatusOK, "Ready")
	})

	// Middleware
	e.Use(mwsvc.RequestLogger(logger.With().Str("component", "http").Logger()))
	e.Use(mwecho.Recover())
	e.Use(mwsvc.Version())

	// MCP over streamable HTTP
	transporthttp.RegisterRoutes(e.Group(""), transporthttp.NewHandler(mcpServer), mwsvc.APIKeyAuth(cfg.APIKey))

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		MCP:    mcpServer,
		Echo:   e,
		HTTP:   srv,
		Client: client,
	}, nil
}

// RunStdio serves MCP over stdin/stdout until the client disconnects or
// ctx is cancelled.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.MCP.Run(ctx, &mcp.StdioTransport{})
}

func hasCredentials(c fortiflex.Credentials) bool {
	return c.APIUser != "" && c.APIPassword != ""
}
