package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// Login attempts allowed per client IP before the window closes. The window
// resets as a whole rather than sliding, which is enough to blunt credential
// stuffing on the login route.
const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 1 * time.Minute
)

// attemptWindow counts requests from one client until resetAt.
type attemptWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter throttles requests per client IP over a fixed window.
type RateLimiter struct {
	mu             sync.Mutex
	windows        map[string]*attemptWindow
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a rate limiter with the login defaults.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:        make(map[string]*attemptWindow),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin handler that rejects callers over the limit with
// 429. Test runs bypass the limiter entirely.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.take(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// take consumes one attempt for the key, opening a fresh window when the
// previous one has expired.
func (rl *RateLimiter) take(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	window, exists := rl.windows[key]
	if !exists || now.After(window.resetAt) {
		rl.windows[key] = &attemptWindow{
			count:   1,
			resetAt: now.Add(rl.windowDuration),
		}
		return true
	}

	if window.count < rl.maxAttempts {
		window.count++
		return true
	}
	return false
}

// Cleanup drops expired windows so long-running processes do not accumulate
// one entry per client IP forever.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, window := range rl.windows {
		if now.After(window.resetAt) {
			delete(rl.windows, key)
		}
	}
}
