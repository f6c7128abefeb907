package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"go.uber.org/zap"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	SiteURL  string `env:"SITE_URL" envDefault:"http://localhost:8080"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"DB_DSN" envDefault:"./dev.db"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SubmitLimit   int           `env:"SUBMIT_LIMIT" envDefault:"5"`
	SubmitWindow  time.Duration `env:"SUBMIT_WINDOW" envDefault:"10m"`

	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

// Load reads .env (if present) and the environment and returns a populated Config.
func Load() (Config, error) {
	// Best-effort: production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.SubmitLimit < 1 {
		return Config{}, fmt.Errorf("SUBMIT_LIMIT must be positive, got %d", cfg.SubmitLimit)
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return cfg, nil
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "dev" || c.AppEnv == "development"
}

// Warn logs settings that are missing but not fatal.
func (c Config) Warn(logger *zap.Logger) {
	if c.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL is not set")
	}
	if c.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is not set")
	}
	if c.SessionSecret == "" {
		logger.Warn("SESSION_SECRET is not set")
	}
	if c.RedisAddr == "" {
		logger.Info("REDIS_ADDR is not set, submissions are not rate limited")
	}
	if c.TelegramToken == "" || c.TelegramChatID == 0 {
		logger.Info("telegram is not configured, inquiry notifications are disabled")
	}
}
