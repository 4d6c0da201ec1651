package config

import "os"

const (
	defaultDBPath   = "./batchprice.db"
	defaultPort     = "8080"
	defaultCurrency = "USD"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath   string
	Port     string
	Currency string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: local dev reads a .env file; production should use
	// real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath:   os.Getenv("DB_PATH"),
		Port:     os.Getenv("PORT"),
		Currency: os.Getenv("CURRENCY"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	return cfg
}
