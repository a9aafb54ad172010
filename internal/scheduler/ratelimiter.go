package scheduler

import (
	"sync"
	"time"
)

// RateLimiter enforces the global one-send-per-interval limit across all
// responses and users. It is owned by the send job and injected at startup;
// the clock is in-process only and intentionally resets on restart.
type RateLimiter struct {
	mu         sync.Mutex
	interval   time.Duration
	lastSentAt time.Time
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Ready reports whether the interval has elapsed since the last recorded
// dispatch. It does not consume the interval.
func (l *RateLimiter) Ready(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSentAt.IsZero() || !now.Before(l.lastSentAt.Add(l.interval))
}

// RecordDispatch consumes the interval. It is called after any dispatch
// attempt, success or failure, so the limiter stays simple and predictable.
func (l *RateLimiter) RecordDispatch(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSentAt = now
}

func (l *RateLimiter) Interval() time.Duration {
	return l.interval
}
