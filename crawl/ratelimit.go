package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/appcat"
	"golang.org/x/time/rate"
)

var _ appcat.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond keeps page fetches to one host at roughly one
// every two seconds.
const DefaultRequestsPerSecond = 0.5

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so fetches to different hosts never
// wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain with the given burst. A burst below 1 is treated as 1, and a
// non-positive rps disables limiting.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
