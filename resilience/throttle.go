package resilience

import (
	"context"
	"sync"
	"time"
)

// ThrottleConfig configures a client-side request throttle.
type ThrottleConfig struct {
	// Rate is the number of requests allowed per second.
	Rate float64
	// Burst is the maximum burst size. Defaults to Rate.
	Burst int
}

// Throttle is a token-bucket limiter applied ahead of outbound requests to
// stay under the API's rate limits instead of eating 429s.
type Throttle struct {
	rate  float64
	burst float64

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewThrottle creates a throttle from config.
func NewThrottle(cfg ThrottleConfig) *Throttle {
	if cfg.Rate <= 0 {
		cfg.Rate = 10.0
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.Rate)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Throttle{
		rate:       cfg.Rate,
		burst:      float64(cfg.Burst),
		tokens:     float64(cfg.Burst),
		lastRefill: time.Now(),
	}
}

// Allow reports whether a request may proceed immediately, consuming a token
// if so.
func (t *Throttle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refill()
	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or the context is done.
func (t *Throttle) Wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		t.refill()
		if t.tokens >= 1 {
			t.tokens--
			t.mu.Unlock()
			return nil
		}
		needed := 1 - t.tokens
		wait := time.Duration(needed / t.rate * float64(time.Second))
		t.mu.Unlock()

		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (t *Throttle) refill() {
	now := time.Now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	t.lastRefill = now
	t.tokens += elapsed * t.rate
	if t.tokens > t.burst {
		t.tokens = t.burst
	}
}
