// Package ratelimit throttles outbound calls to the scraping API.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter controls the rate of requests against the scraping API. All
// traffic goes to a single host, so one token bucket is enough; the hosted
// service applies its own per-target throttling downstream.
type Limiter struct {
	bucket *rate.Limiter
}

// New creates a Limiter allowing requestsPerSecond with the given burst.
// Non-positive arguments fall back to a conservative default.
func New(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.0
	}
	if burst <= 0 {
		burst = 2
	}
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a request may proceed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.bucket.Wait(ctx)
}

// Allow reports whether a request may proceed immediately.
func (l *Limiter) Allow() bool {
	return l.bucket.Allow()
}

// SetLimit updates the rate and burst at runtime.
func (l *Limiter) SetLimit(requestsPerSecond float64, burst int) {
	l.bucket.SetLimit(rate.Limit(requestsPerSecond))
	l.bucket.SetBurst(burst)
}
