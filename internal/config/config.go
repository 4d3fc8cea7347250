package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type StorageConfig struct {
	DataDir string
}

type SecurityConfig struct {
	SessionSecret string
	SessionTTL    int // hours
}

type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// defaultOrigins are the dev frontends; explicit entries, no wildcard, since
// the API allows credentials.
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:4173",
	"http://127.0.0.1:4173",
}

// Load loads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:    getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout:   getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", defaultOrigins),
		},
		Storage: StorageConfig{
			DataDir: getEnv("ARCHIVE_DATA_DIR", "data"),
		},
		Security: SecurityConfig{
			SessionSecret: getEnv("ARCHIVE_SECRET_KEY", ""),
			SessionTTL:    getEnvAsInt("SESSION_TTL_HOURS", 8),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Security.SessionSecret == "" {
		return fmt.Errorf("ARCHIVE_SECRET_KEY is required")
	}
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
