package http

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a sliding window rate limiter.
//
// MusicBrainz asks clients to stay at or below one request per second;
// a limiter of NewRateLimiter(1, time.Second) enforces that across all
// goroutines sharing a Client.
type RateLimiter struct {
	mu           sync.Mutex
	requestTimes []time.Time
	maxRequests  int
	window       time.Duration
	now          func() time.Time
}

// NewRateLimiter creates a limiter allowing maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Wait blocks until a request may be made or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := rl.reserve()
		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve records a request and returns 0 when one is allowed now, or
// the time to wait before checking again.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	windowStart := now.Add(-rl.window)

	valid := rl.requestTimes[:0]
	for _, t := range rl.requestTimes {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	rl.requestTimes = valid

	if len(rl.requestTimes) < rl.maxRequests {
		rl.requestTimes = append(rl.requestTimes, now)
		return 0
	}

	wait := rl.window - now.Sub(rl.requestTimes[0])
	if wait <= 0 {
		// The oldest request is expiring right now.
		return time.Millisecond
	}
	return wait
}
