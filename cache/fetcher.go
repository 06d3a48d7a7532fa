// Package cache memoizes page fetches in memory so that a page visited by
// more than one stage of a run is downloaded once.
package cache

import (
	"context"
	"time"

	"github.com/fwojciec/appcat"
	gocache "github.com/patrickmn/go-cache"
)

var _ appcat.Fetcher = (*Fetcher)(nil)

const (
	// DefaultExpiration bounds how long a fetched page is reused.
	DefaultExpiration = 30 * time.Minute

	cleanupInterval = 10 * time.Minute
)

// entry is a cached fetch outcome. Only not-found errors are cached.
type entry struct {
	html     string
	notFound error
}

// Fetcher wraps an appcat.Fetcher with an in-memory cache keyed by URL.
// Successful bodies and not-found responses are cached; any other error is
// passed through so the caller may retry.
type Fetcher struct {
	next  appcat.Fetcher
	cache *gocache.Cache
}

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	expiration time.Duration
}

// WithExpiration sets how long cached pages stay valid.
func WithExpiration(d time.Duration) Option {
	return func(o *options) {
		o.expiration = d
	}
}

// NewFetcher returns a caching decorator around next.
func NewFetcher(next appcat.Fetcher, opts ...Option) *Fetcher {
	o := &options{expiration: DefaultExpiration}
	for _, opt := range opts {
		opt(o)
	}
	return &Fetcher{
		next:  next,
		cache: gocache.New(o.expiration, cleanupInterval),
	}
}

// Fetch returns the cached outcome for url or fetches it from the wrapped
// fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if v, ok := f.cache.Get(url); ok {
		e := v.(entry)
		return e.html, e.notFound
	}

	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		if appcat.ErrorCode(err) == appcat.ENOTFOUND {
			f.cache.SetDefault(url, entry{notFound: err})
		}
		return "", err
	}

	f.cache.SetDefault(url, entry{html: html})
	return html, nil
}

// Len returns the number of cached pages, including expired ones not yet
// purged.
func (f *Fetcher) Len() int {
	return f.cache.ItemCount()
}

// Close flushes the cache and closes the wrapped fetcher.
func (f *Fetcher) Close() error {
	f.cache.Flush()
	return f.next.Close()
}
