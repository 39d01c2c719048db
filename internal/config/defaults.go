package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultAPIBaseURL        = "https://api.scrapfly.io/scrape"
	DefaultConcurrency       = 2
	DefaultMaxConcurrency    = 20
	DefaultHTTPTimeout       = 90 * time.Second
	DefaultRateLimitRPS      = 2.0
	DefaultRateLimitBurst    = 2
	DefaultCacheTTL          = 10 * time.Minute
	DefaultCacheMaxSizeBytes = 32 * 1024 * 1024 // 32MB
	DefaultCountry           = "us"
	DefaultASP               = true
)
