package config

import (
	"log"
	"os"

	"github.com/kenimay/billdesk/internal/engine"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env       string
	DBPath    string
	ExportDir string
	TaxRate   string
	LogFormat string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DBPath = getEnv("BILLDESK_DB", "billdesk.db")
	cfg.ExportDir = getEnv("BILLDESK_EXPORT_DIR", ".")
	cfg.TaxRate = getEnv("BILLDESK_TAX_RATE", "0")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Policy builds the engine policy from the configured tax rate. An
// unparseable rate falls back to zero.
func (c Config) Policy() engine.Policy {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		log.Printf("invalid tax rate %q, using 0", c.TaxRate)
		return engine.DefaultPolicy()
	}
	return engine.Policy{TaxRate: rate}
}
