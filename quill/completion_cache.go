package quill

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// CompletionCache memoizes backend replies keyed by prompt text and call
// options, so repeated identical queries (test reruns, fan-out over the
// same rendered prompt) skip the backend.
type CompletionCache struct {
	mu      sync.RWMutex
	cache   map[string]*cachedReply
	ttl     time.Duration
	maxSize int
	hits    int64
	misses  int64
}

type cachedReply struct {
	reply     string
	timestamp time.Time
}

// NewCompletionCache creates a cache with the specified TTL and max size.
func NewCompletionCache(ttl time.Duration, maxSize int) *CompletionCache {
	return &CompletionCache{
		cache:   make(map[string]*cachedReply),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// CachedCompletion wraps a CompletionFunc with the cache. Only successful
// replies are stored; errors always pass through to the backend next time.
func CachedCompletion(complete CompletionFunc, cache *CompletionCache) CompletionFunc {
	return func(ctx context.Context, prompt string, opts Options) (string, error) {
		if reply, ok := cache.get(prompt, opts); ok {
			return reply, nil
		}
		reply, err := complete(ctx, prompt, opts)
		if err != nil {
			return "", err
		}
		cache.set(prompt, opts, reply)
		return reply, nil
	}
}

// cacheKey derives a deterministic key from the prompt and the options
// that shape the backend call. OnDelta is a function and is excluded.
func (cc *CompletionCache) cacheKey(prompt string, opts Options) (string, error) {
	optsJSON, err := json.Marshal(struct {
		Model           string
		System          string
		Temperature     *float32
		MaxOutputTokens *int
		Tools           []Tool
		Labels          map[string]string
	}{opts.Model, opts.System, opts.Temperature, opts.MaxOutputTokens, opts.Tools, opts.Labels})
	if err != nil {
		return "", fmt.Errorf("failed to marshal options for cache key: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write(optsJSON)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func (cc *CompletionCache) get(prompt string, opts Options) (string, bool) {
	key, err := cc.cacheKey(prompt, opts)
	if err != nil {
		return "", false
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	cached, exists := cc.cache[key]
	if !exists || time.Since(cached.timestamp) > cc.ttl {
		cc.misses++
		return "", false
	}
	cc.hits++
	return cached.reply, true
}

func (cc *CompletionCache) set(prompt string, opts Options, reply string) {
	key, err := cc.cacheKey(prompt, opts)
	if err != nil {
		return // skip caching if we can't generate a key
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	// Evict the oldest entry when full.
	if len(cc.cache) >= cc.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, v := range cc.cache {
			if oldestTime.IsZero() || v.timestamp.Before(oldestTime) {
				oldestKey = k
				oldestTime = v.timestamp
			}
		}
		if oldestKey != "" {
			delete(cc.cache, oldestKey)
		}
	}

	cc.cache[key] = &cachedReply{reply: reply, timestamp: time.Now()}
}

// Stats returns cache hit/miss counters.
func (cc *CompletionCache) Stats() (hits, misses int64) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.hits, cc.misses
}

// Clear removes all cached entries and resets the counters.
func (cc *CompletionCache) Clear() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache = make(map[string]*cachedReply)
	cc.hits = 0
	cc.misses = 0
}
