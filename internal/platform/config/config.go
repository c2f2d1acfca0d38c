package config

import (
	"log"
	"strings"

	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// DefaultCurrency denominates money amounts that arrive without a
	// currency of their own.
	DefaultCurrency string
	// BaseCurrency is the currency exchange rates are quoted against.
	BaseCurrency string

	// Open Exchange Rates credentials. An empty app ID means the live
	// backend stays off and the static seed rates are served instead.
	OXRAppID   string `mapstructure:"OXR_APP_ID"`
	OXRBaseURL string `mapstructure:"OXR_BASE_URL"`

	// RateLimit uses the limiter format, e.g. "120-M" for 120 requests per minute.
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("OXR_APP_ID", "")
	viper.SetDefault("OXR_BASE_URL", "https://openexchangerates.org/api")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DefaultCurrency = strings.ToUpper(viper.GetString("DEFAULT_CURRENCY"))
	if !currency.Valid(cfg.DefaultCurrency) {
		log.Printf("Warning: DEFAULT_CURRENCY ('%s') is not a known currency. Defaulting to USD.\n", cfg.DefaultCurrency)
		cfg.DefaultCurrency = "USD"
	}

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	if !currency.Valid(cfg.BaseCurrency) {
		log.Printf("Warning: BASE_CURRENCY ('%s') is not a known currency. Defaulting to USD.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "USD"
	}

	cfg.OXRAppID = viper.GetString("OXR_APP_ID")
	cfg.OXRBaseURL = viper.GetString("OXR_BASE_URL")
	if cfg.OXRAppID == "" {
		log.Println("Warning: OXR_APP_ID not set. Serving static seed rates instead of live ones.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	// Comma-separated list; "*" allows every origin.
	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}
