package liquidsim

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CacheConfig configures the caching behavior.
type CacheConfig struct {
	// TTL is how long resolved snippets remain valid.
	// Default: 5 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of cached snippets.
	// When exceeded, the least recently used entry is evicted.
	// Default: 1000.
	MaxEntries int

	// NegativeTTL is how long to cache "not found" results.
	// Set to 0 to disable negative caching.
	NegativeTTL time.Duration
}

// DefaultCacheConfig returns the default caching configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:         DefaultCacheTTLSeconds * time.Second,
		MaxEntries:  DefaultCacheMaxEntries,
		NegativeTTL: 30 * time.Second,
	}
}

// CachingResolver wraps any SnippetResolver with an in-memory cache.
// Resolver errors are never cached.
type CachingResolver struct {
	resolver SnippetResolver
	config   CacheConfig
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	source     string
	notFound   bool
	cachedAt   time.Time
	accessedAt time.Time
}

// NewCachingResolver wraps resolver with caching.
func NewCachingResolver(resolver SnippetResolver, config CacheConfig, logger *zap.Logger) *CachingResolver {
	if config.TTL == 0 {
		config.TTL = DefaultCacheTTLSeconds * time.Second
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CachingResolver{
		resolver: resolver,
		config:   config,
		logger:   logger,
		now:      time.Now,
		entries:  make(map[string]*cacheEntry),
	}
}

// ResolveSnippet returns a cached result when one is valid and otherwise
// asks the wrapped resolver.
func (c *CachingResolver) ResolveSnippet(ctx context.Context, name string) (string, bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[name]
	if ok && c.isValid(entry) {
		entry.accessedAt = c.now()
		c.mu.Unlock()

		c.logger.Debug(LogMsgCacheHit, zap.String(LogFieldSnippet, name))
		return entry.source, !entry.notFound, nil
	}
	c.mu.Unlock()

	c.logger.Debug(LogMsgCacheMiss, zap.String(LogFieldSnippet, name))
	source, found, err := c.resolver.ResolveSnippet(ctx, name)
	if err != nil {
		return StringValueEmpty, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if found || c.config.NegativeTTL > 0 {
		c.addEntry(name, source, !found)
	}
	return source, found, nil
}

// Invalidate removes a snippet from the cache.
func (c *CachingResolver) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()

	c.logger.Debug(LogMsgCacheInvalidated, zap.String(LogFieldSnippet, name))
}

// InvalidateAll clears the entire cache.
func (c *CachingResolver) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached entries, valid or not.
func (c *CachingResolver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// isValid checks if a cache entry is still valid.
// Caller must hold the lock.
func (c *CachingResolver) isValid(entry *cacheEntry) bool {
	ttl := c.config.TTL
	if entry.notFound {
		ttl = c.config.NegativeTTL
	}
	return c.now().Sub(entry.cachedAt) < ttl
}

// addEntry adds an entry to the cache, evicting if necessary.
// Caller must hold the lock.
func (c *CachingResolver) addEntry(name, source string, notFound bool) {
	if _, exists := c.entries[name]; !exists && len(c.entries) >= c.config.MaxEntries {
		c.evictOldest()
	}

	now := c.now()
	c.entries[name] = &cacheEntry{
		source:     source,
		notFound:   notFound,
		cachedAt:   now,
		accessedAt: now,
	}
}

// evictOldest removes the least recently accessed entry.
// Caller must hold the lock.
func (c *CachingResolver) evictOldest() {
	var (
		oldestName string
		oldest     *cacheEntry
	)
	for name, entry := range c.entries {
		if oldest == nil || entry.accessedAt.Before(oldest.accessedAt) {
			oldestName, oldest = name, entry
		}
	}
	if oldest != nil {
		delete(c.entries, oldestName)
	}
}
