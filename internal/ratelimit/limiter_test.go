package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := New(1.0, 3)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("allowed = %d, want burst of 3", allowed)
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	limiter := New(0.001, 1)
	limiter.Allow() // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected error waiting on a drained bucket with a short deadline")
	}
}

func TestLimiter_DefaultsForInvalidArgs(t *testing.T) {
	limiter := New(-1, 0)
	if !limiter.Allow() {
		t.Error("limiter with defaulted settings should allow an initial request")
	}
}

func TestLimiter_SetLimit(t *testing.T) {
	limiter := New(1.0, 1)
	limiter.Allow()

	limiter.SetLimit(100, 10)
	time.Sleep(50 * time.Millisecond) // enough for several tokens at 100 rps
	if !limiter.Allow() {
		t.Error("raised rate should allow another request")
	}
}
