package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls how many times an operation is attempted.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool
}

// Do calls fn until it succeeds, attempts run out, or retryable reports false for an error.
// A nil retryable retries every error.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		delay := cfg.Delay
		if cfg.Backoff {
			delay = time.Duration(attempt) * cfg.Delay
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
