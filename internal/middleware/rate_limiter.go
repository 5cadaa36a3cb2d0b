package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/fullbootcamp/pos-saas-sub000/internal/apierror"
)

const purgeInterval = 5 * time.Minute

// clientEntry tracks request counts per IP within a sliding window.
type clientEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// RateLimiter is a per-IP sliding-window limiter. State lives on the
// struct, not in package globals, so the gate limiter and the stricter
// login limiter are independent instances.
type RateLimiter struct {
	limit   int
	window  time.Duration
	mu      sync.Mutex
	clients map[string]*clientEntry
}

// NewRateLimiter creates a limiter and starts its purge goroutine, which
// evicts expired entries so IPs that never return do not accumulate.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientEntry),
	}
	go rl.purgeLoop()
	return rl
}

// Middleware rejects requests over the ceiling with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		entry, exists := rl.clients[ip]
		if !exists {
			entry = &clientEntry{}
			rl.clients[ip] = entry
		}
		rl.mu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(rl.window)
		}

		entry.count++
		if entry.count > rl.limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(apierror.CodeRateLimited, "Too many requests, try again later"))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		rl.mu.Lock()
		for ip, entry := range rl.clients {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(rl.clients, ip)
				purged++
			}
			entry.mu.Unlock()
		}
		remaining := len(rl.clients)
		rl.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Int("entries_remaining", remaining).
				Msg("rate limiter map purged")
		}
	}
}
