package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Login / payment verification (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Frontend-heavy apps
	limitFrontend = rate.Limit(20)
	burstFrontend = 40

	// Internal / trusted services
	limitInternal = rate.Limit(100)
	burstInternal = 200
)

const (
	visitorIdle   = 3 * time.Minute
	sweepInterval = time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	internalKey string
	strictPaths map[string]bool

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter builds a limiter; requests to strictPaths use the strict tier.
func NewRateLimiter(internalKey string, strictPaths ...string) *RateLimiter {
	paths := make(map[string]bool, len(strictPaths))
	for _, p := range strictPaths {
		paths[p] = true
	}
	return &RateLimiter{
		internalKey: internalKey,
		strictPaths: paths,
		visitors:    make(map[string]*visitor),
		now:         time.Now,
	}
}

// Run sweeps idle visitors until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > visitorIdle {
			delete(rl.visitors, key)
		}
	}
}

// getVisitor retrieves or creates a rate limiter for the given bucket key.
func (rl *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		rl.visitors[key] = &visitor{limiter, rl.now()}
		return limiter
	}

	v.lastSeen = rl.now()
	return v.limiter
}

// Handler must run after Authenticate so signed-in callers are keyed by user id.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, burst, tier := rl.resolveRateTier(c)

		// "user:1:strict" keeps strict and general quotas apart for the same caller.
		key := fmt.Sprintf("%s:%s", identity(c), tier)

		if !rl.getVisitor(key, limit, burst).Allow() {
			abort(c, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}

		c.Next()
	}
}

func identity(c *gin.Context) string {
	if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + c.ClientIP()
}

// resolveRateTier determines which rate limit policy applies to the request.
func (rl *RateLimiter) resolveRateTier(c *gin.Context) (rate.Limit, int, string) {
	if rl.internalKey != "" && c.GetHeader("X-Service-Auth") == rl.internalKey {
		return limitInternal, burstInternal, "internal"
	}

	if rl.strictPaths[c.Request.URL.Path] || c.GetHeader("X-Action") == "auth" {
		return limitStrict, burstStrict, "strict"
	}

	if c.GetHeader("X-Client-Type") == "frontend-heavy" {
		return limitFrontend, burstFrontend, "frontend"
	}

	return limitGeneral, burstGeneral, "general"
}
