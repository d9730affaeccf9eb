package ratelimit

import (
	"context"
	"sync"
	"time"
)

type RateLimiter interface {
	Wait(ctx context.Context) error
	SetInterval(interval time.Duration)
}

// IntervalLimiter enforces a minimum interval between requests. The
// crawler is sequential, but the spacing is a politeness guarantee
// toward the shop, not incidental latency, so it lives in its own
// component instead of inline sleeps.
type IntervalLimiter struct {
	interval   time.Duration
	lastAction time.Time
	mu         sync.Mutex
}

func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	return &IntervalLimiter{interval: interval}
}

// Wait blocks until at least the configured interval has passed since
// the previous call, or the context is cancelled.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.lastAction)
	if elapsed < l.interval {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.interval - elapsed):
		}
	}

	l.lastAction = time.Now()
	return nil
}

func (l *IntervalLimiter) SetInterval(interval time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.interval = interval
}
