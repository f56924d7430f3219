package translateplus

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Defaults applied by NewConfig and ConfigFromEnv.
const (
	DefaultBaseURL       = "https://api.translateplus.io"
	DefaultTimeout       = 30
	DefaultMaxRetries    = 3
	DefaultMaxConcurrent = 5
)

// Config holds the configuration for the TranslatePlus client
// Immutable after construction; the client keeps its own copy
//
// Environment Variables:
// - TRANSLATEPLUS_API_KEY: API key (required)
// - TRANSLATEPLUS_BASE_URL: Base URL for the API (default: https://api.translateplus.io)
// - TRANSLATEPLUS_TIMEOUT: Request timeout in seconds (default: 30)
// - TRANSLATEPLUS_MAX_RETRIES: Attempt budget for transient failures (default: 3)
// - TRANSLATEPLUS_MAX_CONCURRENT: Concurrent request limit (default: 5)
type Config struct {
	APIKey        string `json:"api_key" envconfig:"TRANSLATEPLUS_API_KEY"`
	BaseURL       string `json:"base_url" envconfig:"TRANSLATEPLUS_BASE_URL" default:"https://api.translateplus.io"`
	Timeout       int    `json:"timeout" envconfig:"TRANSLATEPLUS_TIMEOUT" default:"30"`
	MaxRetries    int    `json:"max_retries" envconfig:"TRANSLATEPLUS_MAX_RETRIES" default:"3"`
	MaxConcurrent int    `json:"max_concurrent" envconfig:"TRANSLATEPLUS_MAX_CONCURRENT" default:"5"`
}

// NewConfig returns a Config with defaults applied for the given API key.
func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:        apiKey,
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		MaxConcurrent: DefaultMaxConcurrent,
	}
}

// ConfigFromEnv loads the configuration from environment variables.
// A .env file in the working directory is loaded first if present.
//
// Example:
//
//	cfg, err := translateplus.ConfigFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := translateplus.New(cfg)
func ConfigFromEnv() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return newValidationError("API key is required")
	}
	if c.BaseURL == "" {
		return newValidationError("base URL is required")
	}
	if c.Timeout < 1 {
		return newValidationError("timeout must be greater than 0")
	}
	if c.MaxRetries < 1 {
		return newValidationError("max retries must be greater than 0")
	}
	if c.MaxConcurrent < 1 {
		return newValidationError("max concurrent must be greater than 0")
	}
	return nil
}

// normalized returns a copy safe to keep for the client's lifetime.
func (c Config) normalized() Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}
