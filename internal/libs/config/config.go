// Package config provides application configuration management from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalid reports a configuration value that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	CorpusPath   string
	SkipBlank    bool
	FoldCase     bool
	Normalize    bool
	APIHost      string
	APIPort      string
	LogLevel     string
	CacheSize    int
	DefaultLimit int
	MaxLimit     int
	RateLimit    float64 // requests per second, 0 disables limiting
	RateBurst    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var err error
	cfg := &Config{
		CorpusPath: getEnv("CORPUS_PATH", ""),
		APIPort:    getEnv("API_PORT", "8080"),
		APIHost:    getEnv("API_HOST", "0.0.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	if cfg.SkipBlank, err = getBool("SKIP_BLANK", true); err != nil {
		return nil, err
	}
	if cfg.FoldCase, err = getBool("FOLD_CASE", false); err != nil {
		return nil, err
	}
	if cfg.Normalize, err = getBool("NORMALIZE", false); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getInt("CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.DefaultLimit, err = getInt("SEARCH_DEFAULT_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.MaxLimit, err = getInt("SEARCH_MAX_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = getInt("RATE_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getFloat("RATE_LIMIT", 50); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. It is called by Load and again after
// command-line overrides.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: CACHE_SIZE must not be negative", ErrInvalid)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("%w: SEARCH_DEFAULT_LIMIT must be positive", ErrInvalid)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("%w: SEARCH_MAX_LIMIT must be at least SEARCH_DEFAULT_LIMIT", ErrInvalid)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: RATE_LIMIT must not be negative", ErrInvalid)
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("%w: RATE_BURST must be positive when RATE_LIMIT is set", ErrInvalid)
	}
	return nil
}

// Addr returns the listen address for the HTTP API.
func (c *Config) Addr() string {
	return c.APIHost + ":" + c.APIPort
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, key, value)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, value)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, value)
	}
	return f, nil
}
