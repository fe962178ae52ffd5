// Package config provides environment-sourced configuration for ragmesh.
//
// Sources (highest to lowest priority):
//  1. Environment variables (CHUNK_SIZE, CHUNK_OVERLAP, TOP_K, ...)
//  2. Optional config file (ragmesh.yaml in the working directory)
//  3. Default values
//
// Validation uses sentinel errors so callers can branch with errors.Is.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidChunkSize indicates the chunk size is not positive.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidChunkOverlap indicates the overlap is negative or not smaller than the chunk size.
	ErrInvalidChunkOverlap = errors.New("invalid chunk overlap")

	// ErrInvalidTopK indicates the retrieval candidate count is not positive.
	ErrInvalidTopK = errors.New("invalid top k")
)

// Default values applied when neither environment nor config file set a key.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
)

// Config holds all recognized options.
type Config struct {
	// ChunkSize is the target chunk length in characters used by ingestion.
	ChunkSize int `mapstructure:"chunk_size"`

	// ChunkOverlap is the number of characters shared by adjacent chunks.
	ChunkOverlap int `mapstructure:"chunk_overlap"`

	// TopK is the number of candidates requested per similarity search.
	TopK int `mapstructure:"top_k"`

	// OpenAIAPIKey authenticates the OpenAI completion and embedding services.
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	// AnthropicAPIKey authenticates the Anthropic completion service.
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	// PostgresURL, when set, enables the pgvector-backed index instead of the
	// in-process one. The index's persistence layout is its own concern.
	PostgresURL string `mapstructure:"postgres_url"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is json or text.
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from the environment and an optional ragmesh.yaml.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)
	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Recognized environment variables keep their historical unprefixed names.
	for key, env := range map[string]string{
		"chunk_size":        "CHUNK_SIZE",
		"chunk_overlap":     "CHUNK_OVERLAP",
		"top_k":             "TOP_K",
		"openai_api_key":    "OPENAI_API_KEY",
		"anthropic_api_key": "ANTHROPIC_API_KEY",
		"postgres_url":      "POSTGRES_URL",
		"log_level":         "RAGMESH_LOG_LEVEL",
		"log_format":        "RAGMESH_LOG_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigName("ragmesh")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: %d (must be non-negative and smaller than chunk size %d)", ErrInvalidChunkOverlap, c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidTopK, c.TopK)
	}
	return nil
}
