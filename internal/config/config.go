// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the client needs to reach the backend and find its
// local state.
type Config struct {
	// APIURL is the backend base URL.
	APIURL string `env:"GUILDHALL_API_URL" envDefault:"https://api.guildhall.gg"`
	// Token overrides the stored bearer token when set (env > file > empty).
	Token string `env:"GUILDHALL_TOKEN"`
	// StateDir overrides the default ~/.guildhall state directory.
	StateDir string `env:"GUILDHALL_STATE_DIR"`
	// ExploreMinMembers filters the explore listing to guilds of at least
	// this size. Zero sends no filter.
	ExploreMinMembers int `env:"GUILDHALL_EXPLORE_MIN_MEMBERS" envDefault:"0"`
	// LogLevel selects the file log verbosity (debug, info, warn, error).
	LogLevel string `env:"GUILDHALL_LOG_LEVEL" envDefault:"info"`
	// RequestTimeout bounds each API call issued by subcommands.
	RequestTimeout time.Duration `env:"GUILDHALL_REQUEST_TIMEOUT" envDefault:"30s"`
}

// Load reads a .env file if present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load() //nolint:errcheck // missing .env is the normal case

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
