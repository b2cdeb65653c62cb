package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// tomlConfig mirrors Config for TOML files. Durations are strings ("15s").
type tomlConfig struct {
	APIUser        string `toml:"api_user"`
	APIPassword    string `toml:"api_password"`
	AccountID      int64  `toml:"account_id"`
	ProgramSN      string `toml:"program_sn"`
	APIBaseURI     string `toml:"api_base_uri"`
	AuthURI        string `toml:"auth_uri"`
	ClientID       string `toml:"client_id"`
	RequestTimeout string `toml:"request_timeout"`
	HTTPAddr       string `toml:"http_addr"`
	APIKey         string `toml:"api_key"`
	LogLevel       string `toml:"log_level"`
	ReadTimeout    string `toml:"read_timeout"`
	WriteTimeout   string `toml:"write_timeout"`
	IdleTimeout    string `toml:"idle_timeout"`
}

// loadTOML applies the keys defined in path on top of cfg. A missing file
// leaves cfg untouched.
func loadTOML(path string, cfg *Config) error {
	var raw tomlConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load toml config: %w", err)
	}
	cfg.Source = "toml file"

	setString := func(key, v string, dst *string) {
		if meta.IsDefined(key) {
			*dst = strings.TrimSpace(v)
		}
	}
	setString("api_user", raw.APIUser, &cfg.APIUser)
	setString("api_password", raw.APIPassword, &cfg.APIPassword)
	setString("program_sn", raw.ProgramSN, &cfg.ProgramSN)
	setString("api_base_uri", raw.APIBaseURI, &cfg.APIBaseURI)
	setString("auth_uri", raw.AuthURI, &cfg.AuthURI)
	setString("client_id", raw.ClientID, &cfg.ClientID)
	setString("http_addr", raw.HTTPAddr, &cfg.HTTPAddr)
	setString("api_key", raw.APIKey, &cfg.APIKey)
	setString("log_level", raw.LogLevel, &cfg.LogLevel)

	if meta.IsDefined("account_id") {
		cfg.AccountID = raw.AccountID
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"read_timeout", raw.ReadTimeout, &cfg.ReadTimeout},
		{"write_timeout", raw.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", raw.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	return nil
}
