package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/apitestgen/processor"
)

// inlineLocation names inline content in errors and detection.
const inlineLocation = "inline"

// specInput represents the three ways a definition or collection can be
// provided to a tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI/Swagger document or Postman collection on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI/Swagger document or Postman collection from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// cacheEntry holds a cached definition with LRU ordering and TTL expiry.
type cacheEntry struct {
	def       *processor.Definition
	insertAt  time.Time
	expiresAt time.Time
}

// defCacheStore provides a session-scoped cache for processed definitions.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type defCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var defCache = &defCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached definition or nil. Expired entries are lazily removed.
func (c *defCacheStore) get(key string) *processor.Definition {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.def
	}
	return nil
}

// putWithTTL stores a definition, evicting the least recently used entry if
// at capacity.
func (c *defCacheStore) putWithTTL(key string, def *processor.Definition, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{def: def, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *defCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *defCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *defCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *defCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input, or "" when the input
// cannot be keyed.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

func (s specInput) validate() error {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set APITESTGEN_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// resolve loads and processes the input, using the cache when enabled. The
// returned definition is shared with the cache and must not be modified;
// use withEndpoints to narrow it.
func (s specInput) resolve(ctx context.Context) (*processor.Definition, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := defCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []processor.Option{
		processor.WithHTTPTimeout(cfg.HTTPTimeout),
		processor.WithConcurrency(cfg.Concurrency),
	}

	var (
		def *processor.Definition
		err error
	)
	switch {
	case s.File != "":
		def, err = processor.Process(ctx, s.File, opts...)
	case s.URL != "":
		if !cfg.AllowPrivateIPs {
			opts = append(opts, processor.WithHTTPClient(newSafeHTTPClient(cfg.HTTPTimeout)))
		}
		def, err = processor.Process(ctx, s.URL, opts...)
	default:
		def, err = processor.ProcessBytes(inlineLocation, []byte(s.Content), opts...)
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		defCache.putWithTTL(key, def, ttl)
	}
	return def, nil
}

// withEndpoints returns a shallow copy of def restricted to the given
// endpoint prefixes. The cached definition is left untouched.
func withEndpoints(def *processor.Definition, endpoints []string) *processor.Definition {
	if len(endpoints) == 0 {
		return def
	}
	narrowed := *def
	narrowed.Endpoints = append([]string(nil), endpoints...)
	return &narrowed
}
