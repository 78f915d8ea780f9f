package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	DBHost            string
	DBPort            string
	DBUser            string
	DBPass            string
	DBName            string
	DBSSLMode         string
	JWTSecret         string
	Port              string
	Env               string
	AvatarDir         string
	LogLevel          string
	ReconcileInterval time.Duration
	StreamPollEvery   time.Duration
}

func NewConfigFromEnv() (*Config, error) {
	reconcileEvery, err := time.ParseDuration(getenv("RECONCILE_INTERVAL", "1h"))
	if err != nil {
		return nil, errors.New("invalid RECONCILE_INTERVAL")
	}
	streamPoll, err := time.ParseDuration(getenv("STREAM_POLL_INTERVAL", "2s"))
	if err != nil {
		return nil, errors.New("invalid STREAM_POLL_INTERVAL")
	}

	cfg := &Config{
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPass:            getenv("DB_PASSWORD", "postgres"),
		DBName:            getenv("DB_NAME", "leaderboarddb"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		JWTSecret:         getenv("JWT_SECRET", ""),
		Port:              getenv("PORT", "3000"),
		Env:               getenv("ENV", "development"),
		AvatarDir:         getenv("AVATAR_DIR", "./uploads/avatars"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		ReconcileInterval: reconcileEvery,
		StreamPollEvery:   streamPoll,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
