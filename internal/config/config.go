package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Defaults DefaultsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds record store settings. An empty URL runs the
// engine without persistence; the core never requires it.
type DatabaseConfig struct {
	URL string
}

// DefaultsConfig carries economic defaults injected at construction and
// never mutated afterwards.
type DefaultsConfig struct {
	// ApplicationCost is the flat per-acre pass charge assumed when the
	// caller supplies none
	ApplicationCost float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Defaults: DefaultsConfig{
			ApplicationCost: getEnvFloatOrDefault("APPLICATION_COST", 0),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
