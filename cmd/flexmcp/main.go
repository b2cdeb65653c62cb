package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"winsbygroup.com/flexmcp/internal/config"
	"winsbygroup.com/flexmcp/internal/fortiflex"
	"winsbygroup.com/flexmcp/internal/logging"
	"winsbygroup.com/flexmcp/internal/server"
	"winsbygroup.com/flexmcp/internal/tools"
	"winsbygroup.com/flexmcp/internal/version"
)

func main() {
	// stdout carries the MCP stdio stream; everything human-readable goes to stderr.
	fmt.Fprintln(os.Stderr, version.Banner())

	//
	// Flags
	//
	configPath := flag.String("config", "config.yaml", "path to config file (.yaml or .toml)")
	envPath := flag.String("env", ".env", "path to dotenv file")
	httpAddr := flag.String("http", "", "serve MCP over streamable HTTP on this address instead of stdio")
	toolsFlag := flag.Bool("tools", false, "print tools and exit")
	paramsFlag := flag.Bool("params", false, "print the configuration parameter catalog and exit")
	flag.Parse()

	//
	// Inspection modes
	//
	if *toolsFlag {
		for _, t := range tools.Describe() {
			fmt.Printf("%-24s %s\n", t.Name, t.Description)
		}
		os.Exit(0)
	}

	if *paramsFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fortiflex.ProductTypes()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to print catalog: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	//
	// Load configuration
	//
	if err := config.LoadDotEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	logger := logging.New("flexmcp", cfg.LogLevel)

	//
	// Build server (FortiFlex client, MCP tools, Echo)
	//
	srv, err := server.Build(cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// Stdio mode (default)
	//
	if cfg.HTTPAddr == "" {
		logger.Info().Msg("serving MCP over stdio")
		if err := srv.RunStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("stdio server failed")
		}
		return
	}

	//
	// HTTP mode
	//
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("serving MCP over HTTP")
		if err := srv.Echo.StartServer(srv.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Echo.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
