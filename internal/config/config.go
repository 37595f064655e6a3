// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevHandleSecret signs session handles outside production when
// HANDLE_SECRET is unset.
const DevHandleSecret = "finplanner-dev-secret-do-not-use"

// Config holds all configuration for the application
type Config struct {
	// Server
	Port       int
	StaticPath string
	Env        string

	// Storage
	DBPath string

	// Session handles
	HandleSecret string
	HandleTTL    time.Duration

	// CatalogPath overrides the embedded catalog when set.
	CatalogPath string

	// Rate limiting, per client address
	RateLimitPerMinute int
	RateLimitBurst     int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory if one exists.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvDuration("HANDLE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	perMinute, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               port,
		StaticPath:         getEnv("STATIC_PATH", ""),
		Env:                getEnv("ENV", "development"),
		DBPath:             getEnv("DB_PATH", "./data/finplanner.db"),
		HandleSecret:       getEnv("HANDLE_SECRET", ""),
		HandleTTL:          ttl,
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		RateLimitPerMinute: perMinute,
		RateLimitBurst:     burst,
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.HandleSecret == "" {
		cfg.HandleSecret = DevHandleSecret
	}

	return cfg, nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDevSecret reports whether handles are signed with DevHandleSecret.
func (c *Config) UsesDevSecret() bool {
	return c.HandleSecret == DevHandleSecret
}

func (c *Config) validate() error {
	if c.IsProduction() && c.HandleSecret == "" {
		return fmt.Errorf("HANDLE_SECRET is required in production")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.HandleTTL <= 0 {
		return fmt.Errorf("HANDLE_TTL must be positive, got %s", c.HandleTTL)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 24h: %w", key, err)
	}
	return d, nil
}
