// Package fetch wraps the hosted scraping API. Every logical request to the
// target site becomes one GET against the API endpoint; header rotation,
// proxying, and anti-bot work all happen on the service side. This package
// only adds client-side politeness: rate limiting, retries on API failures,
// and an in-run response cache.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/crawlworks/yelpcrawl/internal/cache"
	"github.com/crawlworks/yelpcrawl/internal/extract"
	"github.com/crawlworks/yelpcrawl/internal/ratelimit"
	"github.com/crawlworks/yelpcrawl/internal/reqctx"
	"github.com/crawlworks/yelpcrawl/internal/retry"
)

// Options configures a Client.
type Options struct {
	BaseURL     string
	APIKey      string
	Country     string
	ASP         bool
	Timeout     time.Duration
	Concurrency int
	CacheTTL    time.Duration
}

// Result is the outcome of one scrape through the API. StatusCode is the
// upstream (target site) status reported by the service, not the API's own.
type Result struct {
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

// Client issues scrape requests through the hosted API.
type Client struct {
	http        *resty.Client
	limiter     *ratelimit.Limiter
	cache       cache.Cache
	retry       retry.Config
	opts        Options
	concurrency int
}

// New creates a Client. limiter and responseCache may be nil to disable
// rate limiting and caching respectively.
func New(opts Options, limiter *ratelimit.Limiter, responseCache cache.Cache) *Client {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 2
	}

	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		limiter:     limiter,
		cache:       responseCache,
		retry:       retry.DefaultConfig(),
		opts:        opts,
		concurrency: opts.Concurrency,
	}
}

// Concurrency returns the configured in-flight request bound.
func (c *Client) Concurrency() int {
	return c.concurrency
}

// SetRetryConfig replaces the retry policy for subsequent fetches.
func (c *Client) SetRetryConfig(cfg retry.Config) {
	c.retry = cfg
}

// Fetch scrapes one target URL through the API and returns the rendered
// page body. API-level failures (429, 5xx, timeouts) are retried; a
// returned Result always carries the target URL so callers can correlate
// batch completions.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	ctx = reqctx.With(ctx)
	rc := reqctx.From(ctx)

	if c.cache != nil {
		if entry, ok := c.cache.Get(targetURL); ok {
			log.Debug().
				Str("request_id", rc.RequestID).
				Str("url", targetURL).
				Msg("cache hit")
			return &Result{URL: targetURL, StatusCode: entry.StatusCode, Body: entry.Body}, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var result *Result
	err := retry.Do(ctx, c.retry, func() error {
		r, err := c.doScrape(ctx, targetURL)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(targetURL, &cache.Entry{Body: result.Body, StatusCode: result.StatusCode}, c.opts.CacheTTL)
	}

	log.Debug().
		Str("request_id", rc.RequestID).
		Str("url", targetURL).
		Int("status", result.StatusCode).
		Int("bytes", len(result.Body)).
		Dur("elapsed", time.Since(rc.StartTime)).
		Msg("scrape completed")

	return result, nil
}

func (c *Client) doScrape(ctx context.Context, targetURL string) (*Result, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.opts.APIKey).
		SetQueryParam("url", targetURL)
	if c.opts.Country != "" {
		req.SetQueryParam("country", c.opts.Country)
	}
	if c.opts.ASP {
		req.SetQueryParam("asp", "true")
	}

	resp, err := req.Get("")
	if err != nil {
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, retry.HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Message:    "scraping API error",
		}
	}

	envelope, err := extract.ParseJSON(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode API envelope: %w", err)
	}

	body := envelope.Str("result.content")
	status := envelope.Int("result.status_code")
	if status == 0 {
		status = resp.StatusCode()
	}

	return &Result{URL: targetURL, StatusCode: status, Body: []byte(body)}, nil
}
