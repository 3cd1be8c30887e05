package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Route catalog configuration
	Routes RoutesConfig
}

// ServerConfig holds process-level configuration
type ServerConfig struct {
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
	LogFormat   string // json or text
}

// RoutesConfig holds route catalog configuration
type RoutesConfig struct {
	SeedPath     string // YAML seed catalog; empty uses the built-in routes
	ShowSegments bool   // expand composite routes when printing
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "json"),
		},
		Routes: RoutesConfig{
			SeedPath:     getEnv("ROUTES_SEED_PATH", ""),
			ShowSegments: getEnvAsBool("ROUTES_SHOW_SEGMENTS", false),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid ENVIRONMENT: %s (must be 'development', 'staging' or 'production')", c.Server.Environment)
	}

	if c.Server.LogFormat != "json" && c.Server.LogFormat != "text" {
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be 'json' or 'text')", c.Server.LogFormat)
	}

	if c.Routes.SeedPath != "" {
		if _, err := os.Stat(c.Routes.SeedPath); err != nil {
			return fmt.Errorf("ROUTES_SEED_PATH is not readable: %w", err)
		}
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}
