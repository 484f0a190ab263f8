package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spreads request pacing per hostname, so hammering
// gamejobs.co does not slow fetches from hitmarker.net and neither
// board sees more than the configured rate.
type HostLimiter struct {
	mu       sync.Mutex
	byHost   map[string]*rate.Limiter
	perHost  rate.Limit
	burstCap int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		byHost:   make(map[string]*rate.Limiter),
		perHost:  rate.Limit(reqPerSec),
		burstCap: burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.byHost[host]
	if !ok {
		lim = rate.NewLimiter(hl.perHost, hl.burstCap)
		hl.byHost[host] = lim
	}
	return lim
}

// WaitURL blocks until the host of raw may be hit again. Unparseable
// URLs share one fallback bucket rather than bypassing the limit.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}
	return hl.limiterFor(u.Host).Wait(ctx)
}
