package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	AppEnv           string
	LogLevel         string
	GeminiAPIKey     string // Empty disables the AI features
	GeminiModel      string
	JWTSecret        string // Empty means a random per-process secret
	SessionTTL       time.Duration
	SessionSweepCron string
	PasswordStorage  string // "plain" or "bcrypt"
	CORSOrigins      []string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	ttlStr := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", ttlStr)
	}

	sweep := getEnv("SESSION_SWEEP_CRON", "*/5 * * * *")
	if _, err := cron.ParseStandard(sweep); err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_CRON %q: %w", sweep, err)
	}

	storage := strings.ToLower(getEnv("PASSWORD_STORAGE", "plain"))
	if storage != "plain" && storage != "bcrypt" {
		return nil, fmt.Errorf("invalid PASSWORD_STORAGE %q: want plain or bcrypt", storage)
	}

	return &Config{
		ServerPort:       port,
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		SessionTTL:       ttl,
		SessionSweepCron: sweep,
		PasswordStorage:  storage,
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}, nil
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
