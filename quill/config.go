package quill

import (
	"net/http"
	"time"
)

// Provider identifies which backend a Client call goes to.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGoogle Provider = "google"
)

// Config contains client-wide configuration: secrets, defaults, and HTTP
// knobs. Provider selection happens per call.
type Config struct {
	// Default model per provider when Options.Model is empty.
	DefaultModelOpenAI string
	DefaultModelGoogle string

	// OpenAI configuration.
	OpenAIAPIKey  string // falls back to env OPENAI_API_KEY if empty and DetectEnv is true
	OpenAIBaseURL string // optional; supports custom or proxy endpoints
	OpenAIOrgID   string // optional

	// Google/GenAI configuration.
	GoogleAPIKey  string // falls back to env GOOGLE_API_KEY if empty and DetectEnv is true
	GoogleBaseURL string // optional custom endpoint

	// Shared client options.
	HTTPClient *http.Client
	Timeout    time.Duration

	// Auto-detection.
	DetectEnv bool // when true, pull missing keys from the environment
}
