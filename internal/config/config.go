package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	JWTSecret     string
	TelegramToken string
	Environment   string
	HTTPAddr      string

	// PollInterval is the fallback catalog/access poll while a session stays
	// visible. SignalDebounce is how long a session waits after an
	// access-change signal before refreshing, to tolerate replication lag.
	PollInterval   time.Duration
	SignalDebounce time.Duration
}

func Load() (*Config, error) {
	// Try to load the .env file, ignore the error when there is none.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   os.Getenv("ENV"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	var err error
	if cfg.PollInterval, err = durationEnv("POLL_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.SignalDebounce, err = durationEnv("SIGNAL_DEBOUNCE", 1500*time.Millisecond); err != nil {
		return nil, err
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}

	return d, nil
}
