package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	AdminPassword    string
	SignalTimezone   string
	DatabaseURL      string
	RedisURL         string
	SignalsDir       string

	SessionTTLSecs   int
	SessionSweepSecs int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set, all logins will fail")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, signal history disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, session snapshots disabled")
	}

	cfg.SignalTimezone = strings.TrimSpace(os.Getenv("SIGNAL_TIMEZONE"))
	if cfg.SignalTimezone == "" {
		cfg.SignalTimezone = "UTC+6"
	}

	cfg.SignalsDir = strings.TrimSpace(os.Getenv("SIGNALS_DIR"))
	if cfg.SignalsDir == "" {
		cfg.SignalsDir = "."
	}

	cfg.SessionTTLSecs = 86400
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLSecs = n
		}
	}

	cfg.SessionSweepSecs = 3600
	if v := strings.TrimSpace(os.Getenv("SESSION_SWEEP_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionSweepSecs = n
		}
	}

	return cfg
}
