// Package config provides configuration for the dashboard backend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the dashboard backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// LLM settings
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Sessions
	SessionTTL time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8000),
		DatabaseURL: getEnv("DATABASE_URL", "file:example.db?cache=shared&mode=rwc"),
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.deepseek.com"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "deepseek-chat"),
		LLMTimeout:  time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		SessionTTL:  time.Duration(getEnvInt("SESSION_TTL_MIN", 30)) * time.Minute,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
