package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// DirectoryCacheTTL bounds how long the cached party-directory name
	// list is served before a re-fetch.
	DirectoryCacheTTL time.Duration
	// ReferenceFlushQuietPeriod is the idle window after the last queued
	// external-reference edit before the value is written.
	ReferenceFlushQuietPeriod time.Duration
	// SuggestionMaxResults caps how many directory matches a suggestion
	// lookup returns.
	SuggestionMaxResults int
	// RefreshInterval drives the periodic background re-read of the
	// transaction set.
	RefreshInterval time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DIRECTORY_CACHE_TTL", "5m")
	viper.SetDefault("REFERENCE_FLUSH_QUIET_PERIOD", "500ms")
	viper.SetDefault("SUGGESTION_MAX_RESULTS", 3)
	viper.SetDefault("REFRESH_INTERVAL", "2m")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.DirectoryCacheTTL = parseDurationOr("DIRECTORY_CACHE_TTL", 5*time.Minute)
	cfg.ReferenceFlushQuietPeriod = parseDurationOr("REFERENCE_FLUSH_QUIET_PERIOD", 500*time.Millisecond)
	cfg.RefreshInterval = parseDurationOr("REFRESH_INTERVAL", 2*time.Minute)

	cfg.SuggestionMaxResults = viper.GetInt("SUGGESTION_MAX_RESULTS")
	if cfg.SuggestionMaxResults <= 0 {
		cfg.SuggestionMaxResults = 3
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "100-M"
	}

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
