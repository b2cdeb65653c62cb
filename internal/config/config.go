package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"winsbygroup.com/flexmcp/internal/fortiflex"
)

// Environment variables read at startup
const (
	EnvAPIUser     = "FORTIFLEX_API_USER"
	EnvAPIPassword = "FORTIFLEX_API_PASSWORD"
	EnvAccountID   = "FORTIFLEX_ACCOUNT_ID"
	EnvProgramSN   = "FORTIFLEX_PROGRAM_SN"
	EnvAPIBaseURI  = "FORTIFLEX_API_BASE_URI"
	EnvAuthURI     = "FORTIFLEX_AUTH_URI"
	EnvHTTPAddr    = "FLEXMCP_HTTP_ADDR"
	EnvAPIKey      = "FLEXMCP_API_KEY"
	EnvLogLevel    = "FLEXMCP_LOG_LEVEL"
)

// Config holds all configuration values
type Config struct {
	APIUser        string        `yaml:"api_user"`
	APIPassword    string        `yaml:"api_password"`
	AccountID      int64         `yaml:"account_id"`
	ProgramSN      string        `yaml:"program_sn"`
	APIBaseURI     string        `yaml:"api_base_uri"`
	AuthURI        string        `yaml:"auth_uri"`
	ClientID       string        `yaml:"client_id"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	HTTPAddr     string        `yaml:"http_addr"` // empty: serve MCP over stdio
	APIKey       string        `yaml:"api_key"`   // protects /mcp when serving over HTTP
	LogLevel     string        `yaml:"log_level"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"` // not applied to the /mcp event stream
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	Source string // where file settings came from: "default", "yaml file" or "toml file"
}

// Credentials returns the FortiFlex defaults carried by the config.
func (c *Config) Credentials() fortiflex.Credentials {
	return fortiflex.Credentials{
		APIUser:     c.APIUser,
		APIPassword: c.APIPassword,
		AccountID:   c.AccountID,
		ProgramSN:   c.ProgramSN,
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from a YAML (or .toml) file and overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults
	cfg := &Config{
		APIBaseURI:     fortiflex.DefaultAPIBaseURI,
		AuthURI:        fortiflex.DefaultAuthURI,
		ClientID:       fortiflex.DefaultClientID,
		RequestTimeout: fortiflex.MaxTimeout,
		LogLevel:       "info",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		Source:         "default",
	}

	// Load from file if it exists
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := loadTOML(path, cfg); err != nil {
			return nil, err
		}
	} else if f, err := os.Open(path); err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		cfg.Source = "yaml file"
	}

	// Override with environment variables
	if v := os.Getenv(EnvAPIUser); v != "" {
		cfg.APIUser = v
	}
	if v := os.Getenv(EnvAPIPassword); v != "" {
		cfg.APIPassword = v
	}
	if v := os.Getenv(EnvAccountID); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAccountID, err)
		}
		cfg.AccountID = id
	}
	if v := os.Getenv(EnvProgramSN); v != "" {
		cfg.ProgramSN = v
	}
	if v := os.Getenv(EnvAPIBaseURI); v != "" {
		cfg.APIBaseURI = v
	}
	if v := os.Getenv(EnvAuthURI); v != "" {
		cfg.AuthURI = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	// Outbound requests never wait longer than the fixed ceiling
	if cfg.RequestTimeout <= 0 || cfg.RequestTimeout > fortiflex.MaxTimeout {
		cfg.RequestTimeout = fortiflex.MaxTimeout
	}

	return cfg, nil
}
