package cmd

import (
	"fmt"
	"os"
	"strconv"

	"orders/internal/adapters/out/eventlog"
	"orders/internal/jobs"

	"github.com/joho/godotenv"
)

// Config holds the service configuration read from the environment.
type Config struct {
	HTTPPort        string
	JWTSecret       string
	EventBufferSize int
	StatsJobSpec    string
}

// LoadConfig reads configuration from a .env file, if present, and the
// process environment. JWT_SECRET is required; everything else has a
// default.
func LoadConfig() (Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load(".env")

	config := Config{
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		EventBufferSize: eventlog.DefaultBufferSize,
		StatsJobSpec:    envOrDefault("STATS_JOB_SPEC", jobs.DefaultStatsSpec),
	}

	if config.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	if raw := os.Getenv("EVENT_BUFFER_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("EVENT_BUFFER_SIZE must be a positive integer, got %q", raw)
		}
		config.EventBufferSize = size
	}

	return config, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
