package recommend

import (
	"slices"
	"strings"
	"time"

	"bookrec/internal/metrics"

	"github.com/maypok86/otter"
)

// ResultCache keeps successful genre fetches for a short time so that the
// follow-up steps of one browsing session (top ten, select) don't refetch.
// Stored results are never mutated.
type ResultCache struct {
	cache otter.Cache[string, Result]
}

// NewResultCache returns nil when ttl or capacity are not positive; a nil
// *ResultCache is a valid, always-missing cache.
func NewResultCache(capacity int, ttl time.Duration) (*ResultCache, error) {
	if capacity <= 0 || ttl <= 0 {
		return nil, nil
	}
	c, err := otter.MustBuilder[string, Result](capacity).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

func cacheKey(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

func (c *ResultCache) Get(genre string) (Result, bool) {
	if c == nil {
		return Result{}, false
	}
	res, ok := c.cache.Get(cacheKey(genre))
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return Result{}, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	res.Books = slices.Clone(res.Books)
	res.Cached = true
	return res, true
}

func (c *ResultCache) Set(genre string, res Result) {
	if c == nil {
		return
	}
	res.Books = slices.Clone(res.Books)
	c.cache.Set(cacheKey(genre), res)
}

func (c *ResultCache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
