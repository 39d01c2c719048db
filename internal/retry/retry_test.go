package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesRetryableStatus(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return HTTPError{StatusCode: http.StatusServiceUnavailable, Status: "503"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_NonRetryableStatusFailsFast(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return HTTPError{StatusCode: http.StatusUnauthorized, Status: "401"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (401 must not be retried)", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	sentinel := HTTPError{StatusCode: http.StatusBadGateway, Status: "502"}
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return sentinel
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != fastConfig().MaxAttempts {
		t.Errorf("calls = %d, want %d", calls, fastConfig().MaxAttempts)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("final error does not wrap the HTTP failure: %v", err)
	}
}

func TestDo_WrappedStatusCoder(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 2 {
			return errors.Join(errors.New("request failed"),
				HTTPError{StatusCode: http.StatusTooManyRequests, Status: "429"})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (wrapped 429 should retry)", calls)
	}
}

func TestDo_ContextCancelStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastConfig()
	cfg.InitialBackoff = time.Minute

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, cfg, func() error {
			calls++
			return HTTPError{StatusCode: http.StatusBadGateway, Status: "502"}
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestBackoffCapped(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 4 * time.Second, Multiplier: 2.0}
	if got := backoffFor(0, cfg); got != time.Second {
		t.Errorf("attempt 0 backoff = %v", got)
	}
	if got := backoffFor(1, cfg); got != 2*time.Second {
		t.Errorf("attempt 1 backoff = %v", got)
	}
	if got := backoffFor(10, cfg); got != 4*time.Second {
		t.Errorf("attempt 10 backoff = %v, want cap", got)
	}
}
