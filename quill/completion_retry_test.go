package quill

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fastRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:       maxAttempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryableCompletion_EventualSuccess(t *testing.T) {
	calls := 0
	transient := errors.New("upstream hiccup")
	complete := RetryableCompletion(func(ctx context.Context, prompt string, opts Options) (string, error) {
		calls++
		if calls < 3 {
			return "", transient
		}
		return "ok", nil
	}, fastRetryConfig(3))

	reply, err := complete(context.Background(), "p", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "ok" || calls != 3 {
		t.Fatalf("expected success on attempt 3, got %q after %d calls", reply, calls)
	}
}

func TestRetryableCompletion_MaxAttemptsExceeded(t *testing.T) {
	calls := 0
	transient := errors.New("upstream hiccup")
	complete := RetryableCompletion(func(ctx context.Context, prompt string, opts Options) (string, error) {
		calls++
		return "", transient
	}, fastRetryConfig(3))

	_, err := complete(context.Background(), "p", Options{})
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if !errors.Is(err, transient) {
		t.Fatalf("final error should wrap the last failure: %v", err)
	}
	if !strings.Contains(err.Error(), "max retry attempts (3) exceeded") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestRetryableCompletion_NonRetryableList(t *testing.T) {
	retryable := errors.New("retry me")
	fatal := errors.New("do not retry")
	cfg := fastRetryConfig(5)
	cfg.RetryableErrors = []error{retryable}

	calls := 0
	complete := RetryableCompletion(func(ctx context.Context, prompt string, opts Options) (string, error) {
		calls++
		return "", fatal
	}, cfg)

	_, err := complete(context.Background(), "p", Options{})
	if calls != 1 {
		t.Fatalf("non-retryable error should stop after 1 call, got %d", calls)
	}
	if !errors.Is(err, fatal) {
		t.Fatalf("expected the fatal error, got %v", err)
	}
}

func TestRetryableCompletion_ContextErrorsNotRetried(t *testing.T) {
	calls := 0
	complete := RetryableCompletion(func(ctx context.Context, prompt string, opts Options) (string, error) {
		calls++
		return "", context.Canceled
	}, fastRetryConfig(5))

	_, err := complete(context.Background(), "p", Options{})
	if calls != 1 {
		t.Fatalf("context errors should not be retried, got %d calls", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryableCompletion_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetryConfig(3)
	cfg.InitialBackoff = time.Second

	complete := RetryableCompletion(func(ctx context.Context, prompt string, opts Options) (string, error) {
		cancel()
		return "", errors.New("transient")
	}, cfg)

	_, err := complete(ctx, "p", Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation during backoff, got %v", err)
	}
}
