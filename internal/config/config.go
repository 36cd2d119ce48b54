package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration, loaded once at startup.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	TokenTTL      time.Duration
	AllowedOrigin string
	LogLevel      string
}

// Load reads an optional .env file, then environment variables with defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./binarytalk.db"),
		JWTSecret:     secret,
		TokenTTL:      ttl,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
