package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is the cotizador runtime configuration, read from the environment.
type Config struct {
	Env      string
	LogLevel string
	Quote    QuoteConfig
	Metrics  MetricsConfig
}

// QuoteConfig holds the defaults a new quotation starts with.
type QuoteConfig struct {
	// TaxRate is a fraction in [0, 1]; 0.16 is the Mexican IVA.
	TaxRate        decimal.Decimal
	CurrencySymbol string
	HistoryLimit   int
	FolioPrefix    string
}

// MetricsConfig controls Prometheus metric naming.
type MetricsConfig struct {
	Namespace string
}

// NewConfig reads the configuration from the environment, loading a .env
// file from the working directory or up to two parents first. Bad ENV,
// LOG_LEVEL and HISTORY_LIMIT values fall back to defaults with a warning;
// a TAX_RATE outside [0, 1] is an error.
func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Debug(".env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Quote: QuoteConfig{
			TaxRate:        getEnvDecimal("TAX_RATE", decimal.RequireFromString("0.16")),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
			HistoryLimit:   getEnvInt("HISTORY_LIMIT", 50),
			FolioPrefix:    getEnv("FOLIO_PREFIX", "COT"),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "cotizador"),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	// Validate tax rate
	if cfg.Quote.TaxRate.IsNegative() || cfg.Quote.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("TAX_RATE must be a fraction between 0 and 1, got %s", cfg.Quote.TaxRate)
	}

	if cfg.Quote.HistoryLimit < 1 {
		slog.Default().Warn("Invalid history limit. Using default: 50", slog.Int("value", cfg.Quote.HistoryLimit))
		cfg.Quote.HistoryLimit = 50
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
		slog.Default().Warn("Invalid integer in environment. Using default", slog.String("key", key), slog.String("value", value))
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
		slog.Default().Warn("Invalid decimal in environment. Using default", slog.String("key", key), slog.String("value", value))
	}
	return defaultValue
}
