package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
}

// BackendConfig holds stock backend configuration
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DashboardConfig holds dashboard behavior configuration
type DashboardConfig struct {
	DefaultTicker          string `yaml:"default_ticker"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds"`
}

// HTTPConfig holds the ops HTTP listener configuration
type HTTPConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Production bool   `yaml:"production"`
	Level      string `yaml:"level"`
}

// Load reads config from a YAML file (missing file is fine), then applies
// environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Dashboard: DashboardConfig{
			DefaultTicker:          "AAPL",
			RefreshIntervalSeconds: 30,
		},
		HTTP: HTTPConfig{
			ListenAddr: ":9090",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	cfg.Backend.BaseURL = getEnvString("BACKEND_BASE_URL", cfg.Backend.BaseURL)
	cfg.Backend.TimeoutSeconds = getEnvInt("BACKEND_TIMEOUT_SECONDS", cfg.Backend.TimeoutSeconds)
	cfg.Dashboard.DefaultTicker = getEnvString("DEFAULT_TICKER", cfg.Dashboard.DefaultTicker)
	cfg.Dashboard.RefreshIntervalSeconds = getEnvInt("REFRESH_INTERVAL_SECONDS", cfg.Dashboard.RefreshIntervalSeconds)
	cfg.HTTP.ListenAddr = getEnvString("OPS_LISTEN_ADDR", cfg.HTTP.ListenAddr)
	cfg.Log.Production = getEnvBool("LOG_PRODUCTION", cfg.Log.Production)
	cfg.Log.Level = getEnvString("LOG_LEVEL", cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	if c.Backend.TimeoutSeconds <= 0 {
		return fmt.Errorf("backend timeout must be positive, got %d", c.Backend.TimeoutSeconds)
	}
	if c.Dashboard.RefreshIntervalSeconds < 1 {
		return fmt.Errorf("refresh interval must be at least 1 second, got %d", c.Dashboard.RefreshIntervalSeconds)
	}
	return nil
}

// BackendTimeout returns the backend request timeout as a duration
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the live-quote polling cadence as a duration
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Dashboard.RefreshIntervalSeconds) * time.Second
}

// getEnvString returns the environment variable value or a default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as a bool or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
