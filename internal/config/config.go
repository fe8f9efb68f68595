package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/payforge/checkout/internal/domain/payment"
)

const (
	defaultServiceName = "checkout"
	defaultEnv         = "dev"
	defaultAddr        = ":8080"
)

var defaultCurrencies = []payment.Currency{
	payment.CurrencyUSD,
	payment.CurrencyEUR,
	payment.CurrencyGBP,
}

var defaultRequiredMetadata = []string{"merchant_id", "order_id"}

// Config holds the application configuration.
type Config struct {
	ServiceName         string
	Env                 string
	Addr                string
	SupportedCurrencies []payment.Currency
	RequiredMetadata    []string
}

// Load reads configuration from the environment. A .env file is honoured
// when present, matching local development workflow.
func Load() (*Config, error) {
	// Ignore error if no .env file exists.
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName:         getEnvOrDefault("SERVICE_NAME", defaultServiceName),
		Env:                 getEnvOrDefault("ENV", defaultEnv),
		Addr:                getEnvOrDefault("ADDR", defaultAddr),
		SupportedCurrencies: defaultCurrencies,
		RequiredMetadata:    defaultRequiredMetadata,
	}

	if raw := os.Getenv("SUPPORTED_CURRENCIES"); raw != "" {
		currencies, err := parseCurrencies(raw)
		if err != nil {
			return nil, err
		}
		cfg.SupportedCurrencies = currencies
	}

	if raw := os.Getenv("REQUIRED_METADATA"); raw != "" {
		cfg.RequiredMetadata = splitList(raw)
	}

	return cfg, nil
}

func parseCurrencies(raw string) ([]payment.Currency, error) {
	parts := splitList(raw)
	currencies := make([]payment.Currency, 0, len(parts))
	for _, p := range parts {
		c, err := payment.ParseCurrency(p)
		if err != nil {
			return nil, fmt.Errorf("config: unsupported currency %q in SUPPORTED_CURRENCIES: %w", p, err)
		}
		currencies = append(currencies, c)
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("config: SUPPORTED_CURRENCIES must name at least one currency")
	}
	return currencies, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
