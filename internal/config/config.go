// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment setting of the API and its tools.
type Config struct {
	Port        string `envconfig:"PORT" default:"8001"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"*"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURL    string `envconfig:"MONGO_URL" default:"mongodb://localhost:27017"`
	DBName      string `envconfig:"DB_NAME" default:"stinex"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	// RedisConsumer names this process in the notification consumer
	// group. Defaults to the host name.
	RedisConsumer string `envconfig:"REDIS_CONSUMER"`

	EmailHost  string `envconfig:"EMAIL_HOST" default:"localhost"`
	EmailPort  int    `envconfig:"EMAIL_PORT" default:"587"`
	EmailUser  string `envconfig:"EMAIL_USER"`
	EmailPass  string `envconfig:"EMAIL_PASS"`
	FromEmail  string `envconfig:"FROM_EMAIL" default:"info@stinex.de"`
	AdminEmail string `envconfig:"ADMIN_EMAIL" default:"admin@stinex.de"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"INFO"`
	SeedOnStart bool   `envconfig:"SEED_ON_START" default:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY"`

	RateLimitPerMinute int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`
	ReadTimeout        time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout       time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "mongo":
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required for STORE_DRIVER=mongo")
		}
		if c.DBName == "" {
			return errors.New("DB_NAME is required for STORE_DRIVER=mongo")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for STORE_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want mongo, postgres or memory)", c.StoreDriver)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.EmailPort <= 0 || c.EmailPort > 65535 {
		return fmt.Errorf("EMAIL_PORT out of range: %d", c.EmailPort)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SMTPConfigured reports whether mail credentials are present.
func (c *Config) SMTPConfigured() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}
