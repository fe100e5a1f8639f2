package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/timetable"
	"golang.org/x/time/rate"
)

var _ timetable.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-host request rate used by the CLI.
const DefaultRequestsPerSecond = 2.0

// DomainLimiter is a token-bucket rate limiter keyed by host. Departments on
// the same host share a bucket; different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter returns a DomainLimiter allowing rps requests per second
// per host, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	// mu guards the map only; Wait runs unlocked.
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// hostOf returns the host of rawURL, or rawURL itself if it does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	// Relative or malformed URLs still get a bucket of their own.
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
