package quill

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// RetryConfig configures transient-failure retries around a backend call.
// This is a lower layer than the query loop: the query loop retries
// validation mismatches with corrective feedback, while this wrapper
// retries the backend call itself (rate limits, flaky networks) with
// exponential backoff.
type RetryConfig struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	// RetryableErrors limits retries to the listed errors. Empty means any
	// backend error is considered transient, except a canceled or expired
	// context.
	RetryableErrors []error
}

var DefaultRetryConfig = RetryConfig{
	MaxAttempts:       3,
	InitialBackoff:    100 * time.Millisecond,
	MaxBackoff:        10 * time.Second,
	BackoffMultiplier: 2.0,
}

// RetryableCompletion wraps a CompletionFunc with backoff retry logic.
func RetryableCompletion(complete CompletionFunc, config RetryConfig) CompletionFunc {
	return func(ctx context.Context, prompt string, opts Options) (string, error) {
		var lastErr error

		for attempt := 0; attempt < config.MaxAttempts; attempt++ {
			reply, err := complete(ctx, prompt, opts)
			if err == nil {
				return reply, nil
			}
			lastErr = err

			if !isRetryable(err, config.RetryableErrors) {
				return "", fmt.Errorf("non-retryable error: %w", err)
			}

			if attempt < config.MaxAttempts-1 {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(calculateBackoff(attempt, config)):
				}
			}
		}

		return "", fmt.Errorf("max retry attempts (%d) exceeded: %w", config.MaxAttempts, lastErr)
	}
}

func isRetryable(err error, retryableErrors []error) bool {
	if len(retryableErrors) == 0 {
		// A dead context means the caller gave up; everything else is
		// assumed transient.
		return !errors.Is(err, context.DeadlineExceeded) &&
			!errors.Is(err, context.Canceled)
	}
	for _, retryableErr := range retryableErrors {
		if errors.Is(err, retryableErr) {
			return true
		}
	}
	return false
}

func calculateBackoff(attempt int, config RetryConfig) time.Duration {
	backoff := float64(config.InitialBackoff) * math.Pow(config.BackoffMultiplier, float64(attempt))
	if backoff > float64(config.MaxBackoff) {
		backoff = float64(config.MaxBackoff)
	}
	return time.Duration(backoff)
}
