package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/handlers"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

// RateLimiter counts requests per user and per client IP in fixed windows.
type RateLimiter struct {
	userLimits map[uint]*counter
	ipLimits   map[string]*counter
	mu         sync.RWMutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration

	stop chan struct{}
	once sync.Once
}

type counter struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop. Call Stop to end it.
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*counter),
		ipLimits:        make(map[string]*counter),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
		stop:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// CheckUserLimit records a request by userID and reports whether it is allowed
func (rl *RateLimiter) CheckUserLimit(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.hit(rl.userLimits[userID], func(w *counter) { rl.userLimits[userID] = w }, rl.userMaxRequests)
}

// CheckIPLimit records a request from ip and reports whether it is allowed
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.hit(rl.ipLimits[ip], func(w *counter) { rl.ipLimits[ip] = w }, rl.ipMaxRequests)
}

func (rl *RateLimiter) hit(limit *counter, store func(*counter), max int) bool {
	now := time.Now()
	if limit == nil || now.After(limit.resetTime) {
		store(&counter{requests: 1, resetTime: now.Add(rl.window)})
		return true
	}
	if limit.requests >= max {
		return false
	}
	limit.requests++
	return true
}

// GetUserRemaining returns remaining requests for user
func (rl *RateLimiter) GetUserRemaining(userID uint) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return remaining(rl.userLimits[userID], rl.userMaxRequests)
}

// GetIPRemaining returns remaining requests for IP
func (rl *RateLimiter) GetIPRemaining(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return remaining(rl.ipLimits[ip], rl.ipMaxRequests)
}

func remaining(limit *counter, max int) int {
	if limit == nil || time.Now().After(limit.resetTime) {
		return max
	}
	if left := max - limit.requests; left > 0 {
		return left
	}
	return 0
}

// Middleware rejects requests over the IP limit, and over the user limit for
// authenticated callers. It must run after Authenticate.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !rl.CheckIPLimit(ip) {
			rl.reject(w, r, "ip", ip)
			return
		}

		if p := policy.FromContext(r.Context()); p != nil {
			if !rl.CheckUserLimit(p.UserID) {
				rl.reject(w, r, "user", strconv.FormatUint(uint64(p.UserID), 10))
				return
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.GetUserRemaining(p.UserID)))
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request, scope, key string) {
	logger.Warn("Rate limit exceeded", "scope", scope, "key", key, "path", r.URL.Path)
	w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
	handlers.WriteError(w, errors.New(errors.ErrCodeRateLimitExceeded, "Request was throttled."))
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := time.Now()
		for userID, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, userID)
			}
		}
		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Stop ends the cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[uint]*counter)
	rl.ipLimits = make(map[string]*counter)
}

// ClientIP returns the first X-Forwarded-For hop, or the remote address host.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
