package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func alwaysRetry(error) bool { return true }

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), DefaultPolicy(), func(attempt int) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q, want ok", got)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	p := Policy{MaxRetries: 3, Backoff: time.Millisecond, Retryable: alwaysRetry}

	calls := 0
	got, err := Do(context.Background(), p, func(attempt int) (int, error) {
		calls++
		if attempt != calls-1 {
			t.Errorf("attempt = %d on call %d", attempt, calls)
		}
		if calls < 4 {
			return 0, errTransient
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (maxRetries+1)", calls)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	p := Policy{MaxRetries: 2, Backoff: time.Millisecond, Retryable: alwaysRetry}

	calls := 0
	_, err := Do(context.Background(), p, func(int) (struct{}, error) {
		calls++
		return struct{}{}, errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected last attempt error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	fatal := errors.New("fatal")
	p := Policy{MaxRetries: 5, Backoff: time.Hour, Retryable: func(err error) bool {
		return !errors.Is(err, fatal)
	}}

	calls := 0
	start := time.Now()
	_, err := Do(context.Background(), p, func(int) (struct{}, error) {
		calls++
		return struct{}{}, fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if time.Since(start) > time.Second {
		t.Error("non-retryable failure should not back off")
	}
}

func TestDo_BackoffDoubles(t *testing.T) {
	var delays []time.Duration
	p := Policy{
		MaxRetries: 3,
		Backoff:    time.Millisecond,
		Retryable:  alwaysRetry,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			delays = append(delays, delay)
		},
	}

	Do(context.Background(), p, func(int) (struct{}, error) {
		return struct{}{}, errTransient
	})

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("got %d retry delays, want %d", len(delays), len(want))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestDo_MaxBackoffCap(t *testing.T) {
	p := Policy{Backoff: time.Second, MaxBackoff: 3 * time.Second}
	if d := p.delay(4); d != 3*time.Second {
		t.Errorf("capped delay = %v, want 3s", d)
	}
}

func TestDo_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxRetries: 3, Backoff: time.Hour, Retryable: alwaysRetry}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, p, func(int) (struct{}, error) {
		return struct{}{}, errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestThrottle_AllowAndRefill(t *testing.T) {
	th := NewThrottle(ThrottleConfig{Rate: 100, Burst: 2})

	if !th.Allow() || !th.Allow() {
		t.Fatal("burst tokens should be available")
	}
	if th.Allow() {
		t.Error("bucket should be empty after burst")
	}

	time.Sleep(30 * time.Millisecond)
	if !th.Allow() {
		t.Error("tokens should refill over time")
	}
}

func TestThrottle_WaitHonorsContext(t *testing.T) {
	th := NewThrottle(ThrottleConfig{Rate: 0.001, Burst: 1})
	th.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := th.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
