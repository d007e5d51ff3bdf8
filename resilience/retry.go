package resilience

import (
	"context"
	"time"
)

// Policy configures the retry state machine.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Total attempts are MaxRetries+1.
	MaxRetries int
	// Backoff is the delay before the first retry. Each subsequent retry
	// doubles it.
	Backoff time.Duration
	// MaxBackoff caps the per-retry delay. Zero means no cap.
	MaxBackoff time.Duration
	// Retryable decides whether a failed attempt may be retried.
	// Nil means nothing is retried.
	Retryable func(error) bool
	// OnRetry is called before sleeping for each retry.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy returns the pipeline defaults: 3 retries with 1s, 2s, 4s
// delays.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		Backoff:    time.Second,
	}
}

// state is a phase of the retry machine.
type state int

const (
	stateAttempting state = iota
	stateRetrying
	stateSucceeded
	stateFailed
)

// Do drives fn through the retry state machine. fn receives the zero-based
// attempt number. The context is honored both before each attempt and during
// backoff sleeps; cancellation surfaces as ctx.Err().
func Do[T any](ctx context.Context, p Policy, fn func(attempt int) (T, error)) (T, error) {
	var (
		zero    T
		result  T
		lastErr error
		attempt int
	)

	st := stateAttempting
	for {
		switch st {
		case stateAttempting:
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			result, lastErr = fn(attempt)
			switch {
			case lastErr == nil:
				st = stateSucceeded
			case p.Retryable == nil || !p.Retryable(lastErr):
				st = stateFailed
			case attempt >= p.MaxRetries:
				st = stateFailed
			default:
				st = stateRetrying
			}

		case stateRetrying:
			delay := p.delay(attempt)
			if p.OnRetry != nil {
				p.OnRetry(attempt, lastErr, delay)
			}
			if err := sleep(ctx, delay); err != nil {
				return zero, err
			}
			attempt++
			st = stateAttempting

		case stateSucceeded:
			return result, nil

		case stateFailed:
			return zero, lastErr
		}
	}
}

// delay computes the backoff before retrying the given zero-based attempt:
// Backoff << attempt, capped by MaxBackoff.
func (p Policy) delay(attempt int) time.Duration {
	d := p.Backoff
	if d <= 0 {
		d = time.Second
	}
	if attempt > 0 && attempt < 63 {
		d <<= attempt
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	return d
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
