package tweetlate

import (
	"context"
	"sync"
	"time"
)

// RateLimiter paces translation calls with a token bucket. A refresh of
// a busy account can translate dozens of posts back to back; the bucket
// keeps that burst under the provider's request-per-minute ceiling.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerMinute sustained
// calls with bursts up to the same size. Non-positive rates default to
// 60 per minute.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	rpm := float64(requestsPerMinute)
	if rpm <= 0 {
		rpm = 60
	}
	return &RateLimiter{
		tokens:     rpm,
		maxTokens:  rpm,
		refillRate: rpm / 60.0,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.TryAcquire() {
			return nil
		}

		wait := time.Duration(float64(time.Second) / r.refillRate)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// TryAcquire takes a token without blocking, reporting whether one was
// available.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(r.lastRefill).Seconds()
	r.tokens += elapsed * r.refillRate
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
	r.lastRefill = now

	if r.tokens >= 1 {
		r.tokens--
		return true
	}
	return false
}
