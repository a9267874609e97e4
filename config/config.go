// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Addr         string
	DatabasePath string
	LogFile      string

	OMDb    OMDbConfig
	Token   TokenConfig
	Limiter LimiterConfig
}

// OMDbConfig configures the movie lookup service client.
type OMDbConfig struct {
	APIKey  string
	BaseURL string
}

// TokenConfig configures session token issuance.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// LimiterConfig configures per-IP request rate limiting.
type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         envOr("REELIST_ADDR", ":5000"),
		DatabasePath: envOr("REELIST_DB_PATH", "data/reelist.db"),
		LogFile:      os.Getenv("REELIST_LOG_FILE"),
		OMDb: OMDbConfig{
			APIKey:  os.Getenv("OMDB_API_KEY"),
			BaseURL: envOr("OMDB_BASE_URL", "https://www.omdbapi.com"),
		},
		Token: TokenConfig{
			Secret: os.Getenv("REELIST_TOKEN_SECRET"),
			TTL:    24 * time.Hour,
		},
		Limiter: LimiterConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
	}

	if cfg.OMDb.APIKey == "" {
		return nil, fmt.Errorf("OMDB_API_KEY is required")
	}

	if v := os.Getenv("REELIST_TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid REELIST_TOKEN_TTL_HOURS %q", v)
		}
		cfg.Token.TTL = time.Duration(hours) * time.Hour
	}

	if v := os.Getenv("REELIST_RATE_LIMIT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REELIST_RATE_LIMIT_ENABLED %q", v)
		}
		cfg.Limiter.Enabled = enabled
	}
	if v := os.Getenv("REELIST_RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("invalid REELIST_RATE_LIMIT_RPS %q", v)
		}
		cfg.Limiter.RPS = rps
	}
	if v := os.Getenv("REELIST_RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("invalid REELIST_RATE_LIMIT_BURST %q", v)
		}
		cfg.Limiter.Burst = burst
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
