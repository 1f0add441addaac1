// Package config holds the configuration for the FIAS client and its
// surrounding tooling. Values are resolved in order: defaults, optional
// yaml file, environment variables (with .env support via godotenv).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Retry   RetryConfig   `yaml:"retry" json:"retry"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds the registry endpoints and transport settings
type APIConfig struct {
	// PortalURL is the base used for token bootstrap
	PortalURL string `yaml:"portal_url" json:"portal_url"`
	// ServiceURL is the base for the SPAS search/detail endpoints
	ServiceURL string        `yaml:"service_url" json:"service_url"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent"`
}

// RetryConfig holds retry behaviour for registry calls
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier  float64       `yaml:"multiplier" json:"multiplier"`
	Jitter      float64       `yaml:"jitter" json:"jitter"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config with sensible defaults. The bootstrap
// portal 500s on first contact often enough that retry is on by default.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			PortalURL:  "https://fias.nalog.ru",
			ServiceURL: "https://fias-public-service.nalog.ru/api/spas/v2.0",
			Timeout:    30 * time.Second,
			UserAgent:  "fiasapi-go",
		},
		Retry: RetryConfig{
			Enabled:     true,
			MaxAttempts: 3,
			BaseDelay:   500 * time.Millisecond,
			MaxDelay:    30 * time.Second,
			Multiplier:  2.0,
			Jitter:      0,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromFile merges values from a yaml file into the config
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// LoadFromEnv merges values from FIAS_* environment variables
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("FIAS_PORTAL_URL"); v != "" {
		c.API.PortalURL = v
	}
	if v := os.Getenv("FIAS_SERVICE_URL"); v != "" {
		c.API.ServiceURL = v
	}
	if v := os.Getenv("FIAS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FIAS_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("FIAS_USER_AGENT"); v != "" {
		c.API.UserAgent = v
	}
	if v := os.Getenv("FIAS_RETRY_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FIAS_RETRY_ENABLED: %w", err)
		}
		c.Retry.Enabled = b
	}
	if v := os.Getenv("FIAS_RETRY_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FIAS_RETRY_MAX_ATTEMPTS: %w", err)
		}
		c.Retry.MaxAttempts = n
	}
	if v := os.Getenv("FIAS_RETRY_BASE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FIAS_RETRY_BASE_DELAY: %w", err)
		}
		c.Retry.BaseDelay = d
	}
	if v := os.Getenv("FIAS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FIAS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	return nil
}

// Load builds a config from defaults, an optional yaml file and the
// environment. A .env file in the working directory is honoured.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; it is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	if c.API.PortalURL == "" {
		return fmt.Errorf("api.portal_url is required")
	}
	if c.API.ServiceURL == "" {
		return fmt.Errorf("api.service_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must not be negative")
	}
	if c.Retry.Multiplier < 1.0 {
		return fmt.Errorf("retry.multiplier must be at least 1.0")
	}
	if c.Retry.Jitter < 0 || c.Retry.Jitter > 1 {
		return fmt.Errorf("retry.jitter must be between 0 and 1")
	}
	return nil
}
