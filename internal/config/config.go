package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Scraping API
	APIBaseURL string
	APIKey     string
	Country    string
	ASP        bool // ask the service to apply anti-scraping protection bypass

	// HTTP
	HTTPTimeout time.Duration
	Concurrency int

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Caching
	CacheTTL          time.Duration
	CacheMaxSizeBytes int64
}

// Load builds a Config by combining defaults, environment variables, and
// CLI flags. Caller should pass the root *cobra.Command so flags can be
// read. The API key is intentionally absent from defaults; it comes from
// the flag, the environment, or the stored credential.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		APIBaseURL:        DefaultAPIBaseURL,
		Country:           DefaultCountry,
		ASP:               DefaultASP,
		HTTPTimeout:       DefaultHTTPTimeout,
		Concurrency:       DefaultConcurrency,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
	}

	// Override from environment variables
	if v := os.Getenv("YELPCRAWL_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("YELPCRAWL_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("YELPCRAWL_COUNTRY"); v != "" {
		cfg.Country = v
	}
	if v := os.Getenv("YELPCRAWL_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("api-key"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.APIKey = s
			}
		}
		if f := cmd.Flags().Lookup("concurrency"); f != nil {
			if n, err := strconv.Atoi(f.Value.String()); err == nil && n > 0 {
				cfg.Concurrency = n
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("country"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Country = s
			}
		}
		if f := cmd.Flags().Lookup("no-asp"); f != nil {
			if f.Value.String() == "true" {
				cfg.ASP = false
			}
		}
		if f := cmd.Flags().Lookup("json-log"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
