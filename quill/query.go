package quill

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// DefaultRetries bounds the query loop when the caller does not choose a
// different limit via QueryConfig.
const DefaultRetries = 4

// QueryConfig configures one query loop.
type QueryConfig struct {
	// Retries is the total number of attempts. It must be at least 1;
	// Query rejects anything lower with ErrInvalidRetries.
	Retries int
	// Options are handed through to the backend on every attempt.
	Options Options
	// Logger receives a warning for each corrective step. Defaults to the
	// prompt's logger, or a no-op.
	Logger *zap.Logger
}

// DefaultQueryConfig is a ready-to-use configuration with DefaultRetries.
var DefaultQueryConfig = QueryConfig{Retries: DefaultRetries}

// Query runs the self-correcting completion loop: render the prompt, call
// the backend, decode and validate the reply against the declared outputs.
// A validation mismatch appends corrective feedback quoting the failure to
// the next attempt's prompt; any other error stops the loop immediately.
// When all attempts fail, the last validation error is returned verbatim,
// with no extra wrapping.
//
// Each attempt works on an immutable Prompt snapshot, so a Prompt may be
// queried from many goroutines at once.
func (p Prompt) Query(ctx context.Context, complete CompletionFunc, cfg QueryConfig) (*Response, error) {
	if cfg.Retries < 1 {
		return nil, ErrInvalidRetries
	}
	logger := cfg.Logger
	if logger == nil {
		logger = p.log()
	}
	opts := cfg.Options
	if len(opts.Tools) == 0 && len(p.tools) > 0 {
		opts.Tools = p.Tools()
	}

	current := p
	var lastErr *ResponseError
	for attempt := 0; attempt < cfg.Retries; attempt++ {
		reply, err := complete(ctx, current.String(), opts)
		if err != nil {
			return nil, err
		}

		resp, err := NewResponse(reply, current)
		if err == nil {
			return resp, nil
		}
		var respErr *ResponseError
		if !errors.As(err, &respErr) {
			return nil, err
		}

		logger.Warn("completion did not match declared outputs",
			zap.Int("attempt", attempt+1),
			zap.Int("retries", cfg.Retries),
			zap.Error(respErr))
		current = current.appendError(respErr)
		lastErr = respErr
	}
	return nil, lastErr
}
