package middleware

import (
	"net/http"
	"sync"

	"go-volunteer/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrRateLimited = apperror.New("RATE_LIMITED", "Too many scans, slow down", http.StatusTooManyRequests)

// keyedLimiter hands out one token bucket per caller.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()
	return limiter.Allow()
}

// RateLimitByUser throttles each authenticated user separately. Requests
// without a user id share a bucket per client IP.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := &keyedLimiter{limiters: make(map[string]*rate.Limiter), r: r, b: b}
	return func(c *gin.Context) {
		key := c.GetString(ContextUserID)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !limiter.allow(key) {
			abortWith(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
