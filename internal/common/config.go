// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string            `toml:"environment"`
	Server      ServerConfig      `toml:"server"`
	Calculation CalculationConfig `toml:"calculation"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host          string  `toml:"host"`
	Port          int     `toml:"port"`
	RatePerSecond float64 `toml:"rate_per_second"` // refill rate of the process-wide token bucket, shared by all clients
	RateBurst     int     `toml:"rate_burst"`
	ReadTimeout   string  `toml:"read_timeout"`
	WriteTimeout  string  `toml:"write_timeout"`
}

// GetReadTimeout parses and returns the read timeout duration
func (c *ServerConfig) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.ReadTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout parses and returns the write timeout duration
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.WriteTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// CalculationConfig holds tunables for the return calculators.
// These are passed explicitly into the calculation functions — the numeric
// core itself reads no ambient configuration.
type CalculationConfig struct {
	IRRMaxIterations int     `toml:"irr_max_iterations"`
	IRRTolerance     float64 `toml:"irr_tolerance"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			RatePerSecond: 25,
			RateBurst:     50,
			ReadTimeout:   "30s",
			WriteTimeout:  "60s",
		},
		Calculation: CalculationConfig{
			IRRMaxIterations: 100,
			IRRTolerance:     1e-4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if iter := os.Getenv("FOLIO_IRR_MAX_ITERATIONS"); iter != "" {
		if n, err := strconv.Atoi(iter); err == nil && n > 0 {
			config.Calculation.IRRMaxIterations = n
		}
	}

	if tol := os.Getenv("FOLIO_IRR_TOLERANCE"); tol != "" {
		if f, err := strconv.ParseFloat(tol, 64); err == nil && f > 0 {
			config.Calculation.IRRTolerance = f
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
