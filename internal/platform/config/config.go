// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Two schemas exist: [Config] for the web front and [CLIConfig] for the terminal
browser. Both point at the same catalog backend.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bgpiesa/internal/i18n"
)

// # Configuration Schema

// Backend holds the catalog backend connection settings shared by every binary.
type Backend struct {

	// APIBaseURL is the backend origin, e.g. "https://api.example.bg".
	APIBaseURL string `env:"API_BASE_URL,required,notEmpty"`

	// HTTPTimeout bounds a single backend call.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// DefaultLanguage is used when a request or user names none.
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"bg"`
}

// Language returns the configured default display language.
func (b Backend) Language() i18n.Lang {
	return i18n.Parse(b.DefaultLanguage)
}

// Config holds all runtime configuration for the web front server.
type Config struct {
	Backend

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Key-Value store for admin sessions (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// SessionTTL caps the lifetime of an admin session.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// Cross-Origin Resource Sharing, comma separated origins.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// CLIConfig holds the configuration of the terminal browser.
type CLIConfig struct {
	Backend

	// CredentialFile keeps the admin credential between runs.
	CredentialFile string `env:"CREDENTIAL_FILE"`

	// HistoryFile keeps the command line history between runs.
	HistoryFile string `env:"HISTORY_FILE"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadCLI parses environment variables into a [CLIConfig] struct, placing the
// credential and history files under the user config directory by default.
func LoadCLI() (*CLIConfig, error) {
	cfg := &CLIConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.CredentialFile == "" || cfg.HistoryFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: locate user config dir: %w", err)
		}
		base := filepath.Join(dir, "bgpiesa")

		if cfg.CredentialFile == "" {
			cfg.CredentialFile = filepath.Join(base, "credential.yaml")
		}
		if cfg.HistoryFile == "" {
			cfg.HistoryFile = filepath.Join(base, "history")
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of ExtraOrigins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
