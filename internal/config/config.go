// Package config loads and validates application configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration for the service.
type Config struct {
	// GeminiAPIKey authenticates against the generative model provider.
	GeminiAPIKey string
	// WeatherAPIKey authenticates against OpenWeatherMap.
	WeatherAPIKey string
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string
	// Port is the HTTP listen port.
	Port int
	// ModelCallInterval is the minimum spacing between outbound model calls.
	ModelCallInterval time.Duration
	// JWTSecret signs session tokens.
	JWTSecret string
	// JWTExpiration is the session token lifetime.
	JWTExpiration time.Duration
	// MaxBatchUpload caps how many images one upload may carry.
	MaxBatchUpload int
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything optional.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		WeatherAPIKey:     os.Getenv("OPENWEATHER_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              8080,
		ModelCallInterval: 15 * time.Second,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiration:     24 * time.Hour,
		MaxBatchUpload:    10,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("MODEL_CALL_INTERVAL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MODEL_CALL_INTERVAL_SECONDS: %v", err)
		}
		cfg.ModelCallInterval = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		cfg.JWTExpiration = time.Duration(hours) * time.Hour
	}

	if v := os.Getenv("MAX_BATCH_UPLOAD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_BATCH_UPLOAD: %v", err)
		}
		cfg.MaxBatchUpload = n
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.ModelCallInterval < 0 {
		return fmt.Errorf("config error: model call interval must be non-negative")
	}
	if c.JWTExpiration < time.Hour {
		return fmt.Errorf("config error: JWT expiration must be at least 1 hour")
	}
	if c.MaxBatchUpload < 1 {
		return fmt.Errorf("config error: max batch upload must be at least 1")
	}
	return nil
}
