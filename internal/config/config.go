package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBDriver     string        `envconfig:"DB_DRIVER" default:"sqlite"`         // sqlite|postgres
	DBDSN        string        `envconfig:"DB_DSN" default:"./data/kostudy.db"` // file path or postgres DSN
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"1m"`         // accumulator period
	WindowMonths int           `envconfig:"WINDOW_MONTHS" default:"3"`          // heatmap window size
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
}

// Load reads an optional .env file, then environment variables into Config.
func Load() (Config, error) {
	// Missing .env is fine; real env vars take precedence anyway.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
