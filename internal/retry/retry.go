package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/credora/indexer/pkg/config"
)

// Always treats every error as retryable.
func Always(error) bool { return true }

// Backoff computes the wait before the given attempt with ±25% jitter.
// The first attempt never waits.
func Backoff(attempt int, cfg *config.RetryConfig) time.Duration {
	if attempt <= 1 {
		return 0
	}

	backoff := float64(cfg.InitialBackoff.Duration) * math.Pow(cfg.BackoffMultiplier, float64(attempt-2))
	if backoff > float64(cfg.MaxBackoff.Duration) {
		backoff = float64(cfg.MaxBackoff.Duration)
	}

	jitterRange := backoff * 0.25
	backoff += (rand.Float64() * 2 * jitterRange) - jitterRange //nolint:gosec

	return time.Duration(max(backoff, 0))
}

// Do executes fn until it succeeds, returns an error rejected by retryable,
// or cfg.MaxAttempts is reached. onRetry, if set, is called before every new attempt.
// A nil cfg executes fn exactly once.
func Do(
	ctx context.Context,
	cfg *config.RetryConfig,
	retryable func(error) bool,
	onRetry func(attempt int, err error),
	fn func() error,
) error {
	if cfg == nil {
		return fn()
	}

	var lastErr error
	startTime := time.Now()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled before attempt %d: %w", attempt, err)
		}

		if attempt > 1 {
			if wait := Backoff(attempt, cfg); wait > 0 {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return fmt.Errorf("context cancelled during backoff (attempt %d/%d): %w",
						attempt, cfg.MaxAttempts, ctx.Err())
				}
			}
			if onRetry != nil {
				onRetry(attempt, lastErr)
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return fmt.Errorf("non-retryable error on attempt %d/%d: %w", attempt, cfg.MaxAttempts, err)
		}
	}

	return fmt.Errorf("all %d attempts failed after %v (last error: %w)",
		cfg.MaxAttempts, time.Since(startTime), lastErr)
}
