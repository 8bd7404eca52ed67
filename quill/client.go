package quill

import (
	"context"
	"fmt"
	"os"
)

// Client is the front door for backend-driven queries. It lazily constructs
// one CompletionFunc per provider from its Config.
type Client struct {
	cfg    Config
	openai CompletionFunc
	google CompletionFunc
}

// New creates a Client with the given config. If DetectEnv is true, missing
// API keys are pulled from environment variables.
func New(cfg Config) *Client {
	if cfg.DetectEnv {
		if cfg.OpenAIAPIKey == "" {
			cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.GoogleAPIKey == "" {
			cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
	return &Client{cfg: cfg}
}

// Completion returns the CompletionFunc for the given provider,
// constructing it on first use.
func (c *Client) Completion(p Provider) (CompletionFunc, error) {
	switch p {
	case ProviderOpenAI:
		if c.openai == nil {
			fn, err := newOpenAICompletion(c.cfg)
			if err != nil {
				return nil, err
			}
			c.openai = fn
		}
		return c.openai, nil
	case ProviderGoogle:
		if c.google == nil {
			fn, err := newGoogleCompletion(c.cfg)
			if err != nil {
				return nil, err
			}
			c.google = fn
		}
		return c.google, nil
	default:
		return nil, fmt.Errorf("quill: unknown provider %q", p)
	}
}

// Query runs the prompt's query loop against the given provider.
func (c *Client) Query(ctx context.Context, p Provider, prompt Prompt, cfg QueryConfig) (*Response, error) {
	complete, err := c.Completion(p)
	if err != nil {
		return nil, err
	}
	return prompt.Query(ctx, complete, cfg)
}
