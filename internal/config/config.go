// Package config loads runtime configuration from environment variables.
//
// All knobs live in one flat struct so the whole configuration can be passed
// around as a single value and wired in the composition root (server.New).
// Parsing is delegated to caarlos0/env — the struct tags name the variable
// and its default, and Load only adds the validation the tags can't express.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures all runtime configuration for the server.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8080"`

	// DBPath is the SQLite database file. ":memory:" is accepted and used
	// by tests.
	DBPath string `env:"DB_PATH" envDefault:"data/ratings.db"`

	// SessionSecret signs the session JWT. Required; at least 16 bytes.
	// Generate one with: openssl rand -hex 32
	SessionSecret string `env:"SESSION_SECRET"`

	// SessionTTL bounds how long a login lasts before the cookie expires.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// TemplateDir holds the HTML templates.
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:"web/templates"`

	// SeedMovies inserts a starter movie catalog when the movies table is
	// empty. Movies are otherwise created out-of-band.
	SeedMovies bool `env:"SEED_MOVIES" envDefault:"true"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks constraints that struct tags cannot express.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("config: SESSION_SECRET is required")
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("config: SESSION_SECRET must be at least 16 characters")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		// 4 and 31 are the limits accepted by the bcrypt library.
		return fmt.Errorf("config: BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: DB_PATH is required")
	}
	return nil
}
