package config

import (
	"fmt"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Matching
	MatchingEnabled bool    `envconfig:"MATCHING_ENABLED" default:"true"`
	MatchThreshold  float64 `envconfig:"MATCH_THRESHOLD" default:"0.70"`
	MatchTopK       int     `envconfig:"MATCH_TOP_K" default:"5"`

	// Embeddings provider (OpenAI-compatible)
	EmbeddingsURL    string `envconfig:"EMBEDDINGS_URL" default:"https://api.openai.com/v1"`
	EmbeddingsAPIKey string `envconfig:"EMBEDDINGS_API_KEY"`
	EmbeddingsModel  string `envconfig:"EMBEDDINGS_MODEL" default:"text-embedding-3-small"`

	// Photo analysis
	VisionEnabled bool   `envconfig:"VISION_ENABLED" default:"false"`
	AWSRegion     string `envconfig:"AWS_REGION" default:"us-east-1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// envconfig only rejects unset required variables, not empty ones.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("load config: DATABASE_URL must not be empty")
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Flags holds the runtime-toggleable feature flags. The matching flag can be
// flipped while the process is running, without a restart; every submission
// attempt reads it fresh.
type Flags struct {
	matchingEnabled atomic.Bool
}

func NewFlags(cfg *Config) *Flags {
	f := &Flags{}
	f.matchingEnabled.Store(cfg.MatchingEnabled)
	return f
}

func (f *Flags) MatchingEnabled() bool {
	return f.matchingEnabled.Load()
}

func (f *Flags) SetMatchingEnabled(v bool) {
	f.matchingEnabled.Store(v)
}
