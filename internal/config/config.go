package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from LEDGER_* environment variables. An empty DatabaseURL
// selects the in-memory account store.
type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
}

func Load() *Config {
	var cfg Config
	if err := envconfig.Process("ledger", &cfg); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	return &cfg
}
