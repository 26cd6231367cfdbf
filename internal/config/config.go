package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const devSecret = "dev-secret-change-in-production"

type Config struct {
	Port         string
	Env          string
	DatabaseURL  string
	SecretKey    string
	SessionTTL   time.Duration
	FoodSeedPath string
	AdminEmails  []string
	LogLevel     string
}

func Load() Config {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", "sqlite://data/foodlog.db"),
		SecretKey:    getEnv("SECRET_KEY", devSecret),
		SessionTTL:   getDuration("SESSION_TTL", 24*time.Hour),
		FoodSeedPath: os.Getenv("FOOD_SEED_PATH"),
		AdminEmails:  splitList(os.Getenv("ADMIN_EMAILS")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.IsProduction() && cfg.SecretKey == devSecret {
		slog.Error("SECRET_KEY must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func (c Config) IsDevelopment() bool { return c.Env == "development" }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// splitList parses a comma separated list of emails, lower-cased.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
