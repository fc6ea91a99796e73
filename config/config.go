// Package config provides configuration for the assistant backend.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/babynest/assistant/genai"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Model settings
	ModelBaseURL string
	ModelAPIKey  string
	ModelName    string
	ModelTimeout time.Duration
	Temperature  float64

	// Session policy
	RetentionHorizon time.Duration
	HistoryWindow    int
	CleanupInterval  time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 5000),
		DatabaseURL:      getEnv("DATABASE_URL", "file:baby_health.db?cache=shared&mode=rwc"),
		ModelBaseURL:     getEnv("MODEL_BASE_URL", "http://localhost:4000"),
		ModelAPIKey:      getEnv("MODEL_API_KEY", ""),
		ModelName:        getEnv("MODEL_NAME", "gemini-1.5-flash"),
		ModelTimeout:     time.Duration(getEnvInt("MODEL_TIMEOUT_MS", 45000)) * time.Millisecond,
		Temperature:      getEnvFloat("MODEL_TEMPERATURE", 0.7),
		RetentionHorizon: time.Duration(getEnvInt("RETENTION_DAYS", 7)) * 24 * time.Hour,
		HistoryWindow:    getEnvInt("HISTORY_WINDOW", 5),
		CleanupInterval:  time.Duration(getEnvInt("CLEANUP_INTERVAL_MIN", 1440)) * time.Minute,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// SafetySettings returns the safety thresholds forwarded on every model call.
func (c *Config) SafetySettings() []genai.SafetySetting {
	return []genai.SafetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	}
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

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
