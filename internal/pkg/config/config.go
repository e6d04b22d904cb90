package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration, read once at startup.
// The admin token is process-wide and immutable for the process lifetime.
type Config struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	AdminAddr       string        `env:"ADMIN_ADDR" envDefault:":9091"`
	AdminToken      string        `env:"ADMIN_TOKEN,required"`
	DBDriver        string        `env:"DB_DRIVER" envDefault:"postgres"` // postgres or sqlite
	PostgresURL     string        `env:"POSTGRES_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"./data/highscores.db"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL is required when DB_DRIVER=postgres")
		}
	case "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}
