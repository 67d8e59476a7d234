package remote

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// RetryConfig controls retry behavior for failed evaluation requests.
// Implements exponential backoff with optional full jitter; server-provided
// Retry-After guidance takes precedence over the computed backoff.
type RetryConfig struct {
	MaxAttempts     int           // Total attempts including the first (1 = no retries)
	InitialInterval time.Duration // Starting backoff duration
	MaxInterval     time.Duration // Backoff cap
	Multiplier      float64       // Exponential backoff multiplier
	UseJitter       bool          // Enable full jitter randomization
}

// DefaultRetryConfig returns retry settings suitable for a remote scoring
// service: three attempts with jittered exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2.0,
		UseJitter:       true,
	}
}

// NewRetryMiddleware creates a middleware that retries retryable failures
// with exponential backoff. Non-retryable errors (auth, validation, contract
// violations) return immediately. Backoff sleeps honor context cancellation.
func NewRetryMiddleware(cfg RetryConfig) Middleware {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			var lastErr error
			for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
				resp, err := next.Handle(ctx, req)
				if err == nil {
					return resp, nil
				}
				lastErr = err

				if !IsRetryable(err) || attempt == cfg.MaxAttempts {
					break
				}

				if err := sleepContext(ctx, backoff(cfg, attempt, lastErr)); err != nil {
					return nil, err
				}
			}
			if cfg.MaxAttempts > 1 && IsRetryable(lastErr) {
				return nil, fmt.Errorf("evaluation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
			}
			return nil, lastErr
		})
	}
}

// backoff computes the delay before the next attempt. A server-provided
// Retry-After takes precedence; otherwise exponential backoff with optional
// full jitter, floored at 1ms to prevent hot looping.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	if after := RetryAfter(err); after > 0 {
		return after
	}

	delay := cfg.InitialInterval
	if delay <= 0 {
		delay = time.Millisecond
	}
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if cfg.MaxInterval > 0 && delay > cfg.MaxInterval {
			delay = cfg.MaxInterval
			break
		}
	}

	if cfg.UseJitter {
		// Full jitter: random between 0 and the computed delay.
		delay = time.Duration(rand.Int63n(int64(delay) + 1))
	}
	return delay
}

// sleepContext waits for the delay or the context, whichever ends first.
func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
