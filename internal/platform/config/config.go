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
	JWTSecret     string
	// Rate limit in ulule/limiter format, e.g. "100-M" for 100 requests per minute.
	RateLimit string
	// CORS
	AllowedOrigins []string
	// Reconciliation engine tuning
	ApplyMaxRetries   int
	ApplyRetryBackoff time.Duration
	MigrationsPath    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("APPLY_MAX_RETRIES", 3)
	viper.SetDefault("APPLY_RETRY_BACKOFF", "20ms")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	// Retry budget for the optimistic commit loop. Linear backoff between
	// attempts; a too-small backoff just burns the budget on hot products.
	cfg.ApplyMaxRetries = viper.GetInt("APPLY_MAX_RETRIES")
	if cfg.ApplyMaxRetries <= 0 {
		cfg.ApplyMaxRetries = 3
		log.Printf("Warning: Invalid APPLY_MAX_RETRIES. Defaulting to %d.\n", cfg.ApplyMaxRetries)
	}

	backoffStr := viper.GetString("APPLY_RETRY_BACKOFF")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil || backoff <= 0 {
		backoff = 20 * time.Millisecond
		if backoffStr != "" {
			log.Printf("Warning: Invalid value for APPLY_RETRY_BACKOFF ('%s'). Defaulting to %s.\n", backoffStr, backoff.String())
		}
	}
	cfg.ApplyRetryBackoff = backoff

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}
