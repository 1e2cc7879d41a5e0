package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Coaching enrichment
	CoachBaseURL string
	CoachAPIKey  string
	CoachModel   string
	CoachTimeout time.Duration

	// Save-failure notifications
	SESRegion    string
	SESFromEmail string
	SESFromName  string
	SESToEmail   string

	LogLevel string
	LogPath  string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./algopulse.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		CoachBaseURL: getEnv("COACH_BASE_URL", ""),
		CoachAPIKey:  getEnv("COACH_API_KEY", ""),
		CoachModel:   getEnv("COACH_MODEL", "gemini-3-flash-preview"),
		CoachTimeout: getDurationEnv("COACH_TIMEOUT_SECONDS", 20) * time.Second,

		SESRegion:    getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "AlgoPulse"),
		SESToEmail:   getEnv("SES_TO_EMAIL", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", "./algopulse.log"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv reads an integer environment variable or returns a default value
func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultValue)
}
