// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the externally configured state of one invocation. Flags may
// override any of it; the environment supplies the defaults.
type Config struct {
	// LogPath is the fixed location of the shared log file.
	LogPath string `env:"GALLERYLOG_PATH" envDefault:"logs/gallery.log"`

	// CredentialsPath optionally points at a YAML credential table that
	// replaces the built-in one.
	CredentialsPath string `env:"GALLERYLOG_CREDENTIALS"`

	// LockTimeout optionally bounds lock acquisition. Zero blocks forever.
	LockTimeout time.Duration `env:"GALLERYLOG_LOCK_TIMEOUT"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
