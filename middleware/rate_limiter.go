package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per key. Idle buckets are dropped by Sweep.
type RateLimiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	perMinute int
	key       KeyFunc
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per client IP with an equal burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	return NewKeyedRateLimiter(perMinute, getClientIP)
}

// NewKeyedRateLimiter allows perMinute requests per key with an equal burst.
func NewKeyedRateLimiter(perMinute int, key KeyFunc) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		perMinute: perMinute,
		key:       key,
		now:       time.Now,
	}
}

// TwilioSenderKey charges webhook calls to the sending number. Twilio delivers
// every client's messages from a shared pool of addresses, so the IP says
// nothing about who is talking.
func TwilioSenderKey(c *gin.Context) string {
	if from := c.PostForm("From"); from != "" {
		return "from:" + from
	}
	return "ip:" + getClientIP(c)
}

// getLimiter returns the rate limiter for a key, creating one if it doesn't exist.
func (s *RateLimiter) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[key]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute),
		}
		s.limiters[key] = entry
	}
	entry.lastSeen = s.now()
	return entry.limiter
}

// Sweep drops buckets not used within idle and returns how many were dropped.
// A bucket idle for a full minute has refilled, so dropping it loses nothing.
func (s *RateLimiter) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked buckets.
func (s *RateLimiter) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Middleware limits requests per key.
func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := s.key(c)
		if !s.getLimiter(key).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
