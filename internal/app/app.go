// Package app provides the core application initialization and lifecycle
// management.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crawlworks/yelpcrawl/internal/auth"
	"github.com/crawlworks/yelpcrawl/internal/cache"
	"github.com/crawlworks/yelpcrawl/internal/config"
	"github.com/crawlworks/yelpcrawl/internal/fetch"
	"github.com/crawlworks/yelpcrawl/internal/ratelimit"
	"github.com/crawlworks/yelpcrawl/internal/yelp"
)

// Application holds all application dependencies and manages their
// lifecycle. It is created once at startup and shared across CLI commands;
// Close releases its resources.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Cache       cache.Cache
	RateLimiter *ratelimit.Limiter
	FetchClient *fetch.Client
	Scraper     *yelp.Scraper
	startTime   time.Time
}

// New creates and initializes an Application: logger, response cache, rate
// limiter, fetch client, and the site scraper on top. If no API key is
// configured, the stored credential is loaded; a missing key is an error
// because every fetch goes through the hosted API.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
		})
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	if cfg.APIKey == "" {
		key, err := auth.LoadAPIKey()
		if err != nil {
			if errors.Is(err, auth.ErrNoAPIKey) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to load stored API key: %w", err)
		}
		cfg.APIKey = key
		logger.Debug().Msg("API key loaded from stored credential")
	}

	responseCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
	logger.Debug().
		Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
		Dur("ttl", cfg.CacheTTL).
		Msg("response cache initialized")

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("rate limiter initialized")

	client := fetch.New(fetch.Options{
		BaseURL:     cfg.APIBaseURL,
		APIKey:      cfg.APIKey,
		Country:     cfg.Country,
		ASP:         cfg.ASP,
		Timeout:     cfg.HTTPTimeout,
		Concurrency: cfg.Concurrency,
		CacheTTL:    cfg.CacheTTL,
	}, limiter, responseCache)
	logger.Debug().
		Str("api_url", cfg.APIBaseURL).
		Int("concurrency", cfg.Concurrency).
		Dur("timeout", cfg.HTTPTimeout).
		Msg("fetch client initialized")

	appCtx := &Application{
		Config:      cfg,
		Logger:      &logger,
		Cache:       responseCache,
		RateLimiter: limiter,
		FetchClient: client,
		Scraper:     yelp.NewScraper(client),
		startTime:   time.Now(),
	}

	logger.Debug().Msg("application initialized")
	return appCtx, nil
}

// Close releases application resources.
func (a *Application) Close() {
	if a.Cache != nil {
		a.Cache.Close()
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("application shutdown complete")
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
