package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
)

// ErrCodeRateLimited is returned with 429
const ErrCodeRateLimited = "ERR_RATE_LIMITED"

// RateCounter counts requests per key in fixed windows. Hit records one
// request and returns the count in the current window and the time left
// until it resets. Peek returns the count without recording.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error)
	Peek(ctx context.Context, key string) (int, error)
}

// RateLimiter allows limit requests per key per window. The counter is shared
// Redis when several instances must agree, memory otherwise. Counter errors
// let the request through.
type RateLimiter struct {
	counter RateCounter
	limit   int
	window  time.Duration
	stop    func()
}

// NewRateLimiter limits with an in-memory counter. Call Stop to end its sweep.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	mc := newMemoryCounter(window * 2)
	return &RateLimiter{counter: mc, limit: limit, window: window, stop: mc.close}
}

// NewSharedRateLimiter limits with an external counter such as Redis
func NewSharedRateLimiter(counter RateCounter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: limit, window: window, stop: func() {}}
}

// Stop releases the limiter's background work; it is safe to call twice
func (rl *RateLimiter) Stop() { rl.stop() }

// Allow records a request for key and reports whether it is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	ok, _, _ := rl.take(context.Background(), key)
	return ok
}

// Remaining returns how many requests key has left in its window
func (rl *RateLimiter) Remaining(key string) int {
	n, err := rl.counter.Peek(context.Background(), key)
	if err != nil {
		return rl.limit
	}
	return max(rl.limit-n, 0)
}

func (rl *RateLimiter) take(ctx context.Context, key string) (bool, int, time.Duration) {
	n, reset, err := rl.counter.Hit(ctx, key, rl.window)
	if err != nil {
		return true, rl.limit, rl.window
	}
	return n <= rl.limit, max(rl.limit-n, 0), reset
}

// RateLimit limits by client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey limits by the key keyFunc derives from the request
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, reset := limiter.take(c.Request.Context(), keyFunc(c))
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				ErrCodeRateLimited, "Too many requests. Please try again later.", c.GetString(RequestIDKey)))
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}

// LoginRateKey limits sign-in attempts per client IP and username
func LoginRateKey(c *gin.Context) string {
	var body struct {
		Username string `json:"username"`
	}
	_ = c.ShouldBindBodyWithJSON(&body)
	return "login:" + c.ClientIP() + ":" + body.Username
}

type rateWindow struct {
	count int
	ends  time.Time
}

type memoryCounter struct {
	mu       sync.Mutex
	windows  map[string]*rateWindow
	done     chan struct{}
	stopOnce sync.Once
}

func newMemoryCounter(sweep time.Duration) *memoryCounter {
	mc := &memoryCounter{windows: make(map[string]*rateWindow), done: make(chan struct{})}
	if sweep > 0 {
		go mc.sweep(sweep)
	}
	return mc
}

func (mc *memoryCounter) Hit(_ context.Context, key string, length time.Duration) (int, time.Duration, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now()
	w, ok := mc.windows[key]
	if !ok || !now.Before(w.ends) {
		w = &rateWindow{ends: now.Add(length)}
		mc.windows[key] = w
	}
	w.count++
	return w.count, w.ends.Sub(now), nil
}

func (mc *memoryCounter) Peek(_ context.Context, key string) (int, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	w, ok := mc.windows[key]
	if !ok || !time.Now().Before(w.ends) {
		return 0, nil
	}
	return w.count, nil
}

func (mc *memoryCounter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-mc.done:
			return
		case now := <-ticker.C:
			mc.mu.Lock()
			for key, w := range mc.windows {
				if !now.Before(w.ends) {
					delete(mc.windows, key)
				}
			}
			mc.mu.Unlock()
		}
	}
}

func (mc *memoryCounter) close() {
	mc.stopOnce.Do(func() { close(mc.done) })
}
