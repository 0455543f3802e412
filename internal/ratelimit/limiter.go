package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Minimum intervals between outbound NCBI requests. The service allows
// 10 requests/second with an API key and 3/second without one.
const (
	IntervalWithKey = 100 * time.Millisecond
	IntervalAnon    = 334 * time.Millisecond
)

// Limiter paces outbound requests so that no two granted acquisitions occur
// closer together than the configured minimum interval. A single instance is
// shared by every component issuing remote calls; construct once at process
// start and inject (never ambient global state).
type Limiter struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time // earliest instant the next acquisition may be granted
}

// New creates a limiter with the given minimum inter-request interval
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// ForAPIKey creates a limiter at the rate NCBI permits for the given
// credential presence.
func ForAPIKey(hasKey bool) *Limiter {
	if hasKey {
		return New(IntervalWithKey)
	}
	return New(IntervalAnon)
}

// Interval returns the configured minimum inter-request interval
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Acquire blocks until at least the minimum interval has elapsed since the
// previous granted acquisition, then returns. Grant order is first-come
// first-served on the internal reservation; callers blocked in Acquire hold
// no lock while sleeping. Returns the context error if ctx is done before
// the reserved slot arrives.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	at := l.next
	if at.Before(now) {
		at = now
	}
	l.next = at.Add(l.interval)
	l.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
