// Package config loads application configuration from the environment.
// A local .env file is honoured when present; explicit environment
// variables always win.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. Fields are populated from
// environment variables via struct tags, with defaults suitable for local
// development against the in-memory store.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// In-memory store
	StoreLatency time.Duration `env:"STORE_LATENCY" envDefault:"300ms"`

	// Auction feed
	FeedInterval time.Duration `env:"FEED_INTERVAL" envDefault:"3s"`
	FeedWindow   int           `env:"FEED_WINDOW" envDefault:"50"`

	// External services
	SuggestAPIURL string `env:"SUGGEST_API_URL" envDefault:"http://localhost:8090"`

	// HTTP client
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// Resilience
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3"`
	InitialBackoff time.Duration `env:"INITIAL_BACKOFF" envDefault:"100ms"`
	MaxConcurrency int           `env:"MAX_CONCURRENCY" envDefault:"50"`

	// Cache
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Observability
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`

	// JWT / Auth
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"adpulse-default-dev-secret-change-me"`
	JWTAccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	JWTRefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	// Dev tools
	DevTools bool `env:"DEV_TOOLS" envDefault:"true"`
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FeedWindow <= 0 {
		return fmt.Errorf("FEED_WINDOW must be positive, got %d", c.FeedWindow)
	}
	if c.FeedInterval <= 0 {
		return fmt.Errorf("FEED_INTERVAL must be positive, got %s", c.FeedInterval)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}
