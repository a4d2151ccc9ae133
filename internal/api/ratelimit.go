package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Per-IP limiter defaults. Every generate request costs at least one
// upstream model call (a lesson plan costs four), so the refill rate is kept
// well below interactive typing speed while the burst still covers a page
// load that fires a generate plus a contents refresh.
const (
	defaultRateLimit = 5
	defaultRateBurst = 10

	limiterSweepInterval = 5 * time.Minute
	limiterIdleEviction  = 10 * time.Minute
)

// ipLimiter hands out one token bucket per client IP, evicting buckets for
// IPs that have gone quiet. Eviction happens inline during allow, so there
// is no background goroutine to manage.
type ipLimiter struct {
	mu        sync.Mutex
	callers   map[string]*caller
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

// caller is one IP's bucket and the last time it was seen.
type caller struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter creates a limiter refilling r tokens per second per IP,
// with burst tokens available up front.
func newRateLimiter(r float64, burst int) *ipLimiter {
	return &ipLimiter{
		callers:   make(map[string]*caller),
		limit:     rate.Limit(r),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// allow reports whether a request from ip may proceed, spending one token.
func (rl *ipLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	if now.Sub(rl.lastSweep) > limiterSweepInterval {
		for k, c := range rl.callers {
			if now.Sub(c.lastSeen) > limiterIdleEviction {
				delete(rl.callers, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.callers[ip]
	if !ok {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.callers[ip] = &caller{limiter: limiter, lastSeen: now}
		limiter.Allow()
		return true
	}

	c.lastSeen = now
	return c.limiter.Allow()
}

// rateLimitMiddleware rejects callers that have exhausted their bucket with
// 429 and a Retry-After hint.
func rateLimitMiddleware(rl *ipLimiter, trustProxy bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustProxy)
			if !rl.allow(ip) {
				logger.Warn("rate limit exceeded",
					"ip", ip,
					"path", r.URL.Path,
					"method", r.Method,
				)
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP used as the limiter key.
//
// With trustProxy set, X-Real-IP wins, then the first entry of
// X-Forwarded-For; both are run through net.ParseIP so a spoofed header
// cannot smuggle arbitrary strings into the caller map. Without it only
// RemoteAddr is consulted, the safe default when the server is exposed
// directly.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
				return ip.String()
			}
		}

		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			raw := xff
			if first, _, ok := strings.Cut(xff, ","); ok {
				raw = first
			}
			if ip := net.ParseIP(strings.TrimSpace(raw)); ip != nil {
				return ip.String()
			}
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
