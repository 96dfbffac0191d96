package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched posting stays fresh. Postings
// change rarely; an hour keeps repeated optimize runs from re-fetching.
const DefaultCacheTTL = time.Hour

// CachedFetcher wraps URL fetching with an in-memory, TTL-bounded cache
// keyed by URL. It is safe for concurrent use.
type CachedFetcher struct {
	options *Options
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result    *Result
	fetchedAt time.Time
}

// NewCachedFetcher creates a cached fetcher. A zero ttl uses
// DefaultCacheTTL.
func NewCachedFetcher(opts *Options, ttl time.Duration) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		options: opts,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// CachedResult extends Result with cache provenance.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, serving fresh cached content when available.
// skipCache forces a network fetch and refreshes the entry.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string, skipCache bool) (*CachedResult, error) {
	if !skipCache {
		f.mu.Lock()
		entry, ok := f.entries[urlStr]
		f.mu.Unlock()
		if ok && f.now().Sub(entry.fetchedAt) < f.ttl {
			return &CachedResult{Result: entry.result, FromCache: true}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.entries[urlStr] = cacheEntry{result: result, fetchedAt: f.now()}
	f.mu.Unlock()

	return &CachedResult{Result: result, FromCache: false}, nil
}

// Invalidate drops the cached entry for a URL.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.mu.Lock()
	delete(f.entries, urlStr)
	f.mu.Unlock()
}
