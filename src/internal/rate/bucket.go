// FILE: logforge/src/internal/rate/bucket.go
package rate

import (
	"sync"
	"time"

	"logforge/src/internal/clock"
)

// TokenBucket is a thread-safe token bucket running on an injected
// clock, so tests can refill it with virtual time.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	clk        clock.Clock
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket with the given capacity and
// refill rate.
func NewTokenBucket(capacity, refillRate float64, clk clock.Clock) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: clk.Now(),
		clk:        clk,
	}
}

// Allow attempts to consume one token, returns true if allowed.
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN attempts to consume n tokens, returns true if allowed.
func (tb *TokenBucket) AllowN(n float64) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens >= n {
		tb.tokens -= n
		return true
	}
	return false
}

// Tokens returns the current number of available tokens.
func (tb *TokenBucket) Tokens() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// refill adds tokens based on time elapsed since last refill.
// MUST be called with mutex held.
func (tb *TokenBucket) refill() {
	now := tb.clk.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	// Clock went backwards, reset without adding tokens
	if elapsed < 0 {
		tb.lastRefill = now
		return
	}

	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}
