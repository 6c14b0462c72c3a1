package lint

import (
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultRegexCacheSize bounds the number of compiled patterns kept.
const defaultRegexCacheSize = 256

// RegexCache compiles regular expressions once and shares them between
// rules and files. Failed compilations are cached too.
type RegexCache struct {
	cache  *lru.Cache[string, compiledRegex]
	hits   atomic.Int64
	misses atomic.Int64
}

type compiledRegex struct {
	re  *regexp.Regexp
	err error
}

// NewRegexCache creates a cache holding up to size patterns.
func NewRegexCache(size int) (*RegexCache, error) {
	cache, err := lru.New[string, compiledRegex](size)
	if err != nil {
		return nil, fmt.Errorf("create regex cache: %w", err)
	}
	return &RegexCache{cache: cache}, nil
}

// Compile returns the compiled pattern.
func (c *RegexCache) Compile(pattern string) (*regexp.Regexp, error) {
	if entry, ok := c.cache.Get(pattern); ok {
		c.hits.Add(1)
		return entry.re, entry.err
	}
	c.misses.Add(1)

	re, err := regexp.Compile(pattern)
	if err != nil {
		err = fmt.Errorf("compile %q: %w", pattern, err)
	}
	c.cache.Add(pattern, compiledRegex{re: re, err: err})
	return re, err
}

// Stats returns the number of cache hits and misses so far.
func (c *RegexCache) Stats() (int64, int64) {
	return c.hits.Load(), c.misses.Load()
}

//nolint:gochecknoglobals // Shared process-wide cache.
var (
	defaultRegexOnce  sync.Once
	defaultRegexCache *RegexCache
)

// DefaultRegexCache returns the process-wide cache.
func DefaultRegexCache() *RegexCache {
	defaultRegexOnce.Do(func() {
		cache, err := NewRegexCache(defaultRegexCacheSize)
		if err != nil {
			panic(err)
		}
		defaultRegexCache = cache
	})
	return defaultRegexCache
}
