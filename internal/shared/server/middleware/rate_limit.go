package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
)

type tokenBucket struct {
	tokens   float64
	lastFill time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rate    float64 // tokens per second
	burst   float64
}

func newRateLimiter(ratePerSec float64, burst int) *rateLimiter {
	return &rateLimiter{
		buckets: make(map[string]*tokenBucket),
		rate:    ratePerSec,
		burst:   float64(burst),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: rl.burst, lastFill: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimit throttles requests per client IP using a token bucket.
// Intended for the AI endpoints, which fan out to a paid upstream.
func RateLimit(ratePerSec float64, burst int) gin.HandlerFunc {
	rl := newRateLimiter(ratePerSec, burst)

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down", nil)
			return
		}
		c.Next()
	}
}
