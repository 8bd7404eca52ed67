package quill

import "context"

// CompletionFunc is the backend contract: prompt text plus options in,
// reply text out. Implementations may fail with transient backend errors;
// the query loop never catches those, it only retries validation failures
// of its own decode step. See Client for OpenAI- and Gemini-backed
// implementations, or supply your own.
type CompletionFunc func(ctx context.Context, prompt string, opts Options) (string, error)

// Options carries backend-specific knobs through the query loop. They are
// passed to the CompletionFunc opaquely; the loop itself only fills Tools
// from the prompt's declarations when the caller has not.
type Options struct {
	// Model to use; empty falls back to the client's configured default.
	Model string
	// System is an optional system instruction.
	System string

	Temperature     *float32
	MaxOutputTokens *int

	// Tools declared to the backend as function-calling schemas.
	Tools []Tool

	// OnDelta, when set, asks the backend to stream and hand over each text
	// chunk as it arrives. The CompletionFunc still returns the full
	// accumulated reply.
	OnDelta func(chunk string)

	// Labels are arbitrary per-call metadata, carried provider-side where
	// supported.
	Labels map[string]string
}
