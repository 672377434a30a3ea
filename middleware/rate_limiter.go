// middleware/rate_limiter.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/HSouheill/sower_backend/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type RateLimiter struct {
	ips            map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             sync.Mutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		ips:           make(map[string]*rate.Limiter),
		blockedIPs:    make(map[string]time.Time),
		defaultLimit:  rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:  20,
		blockDuration: 5 * time.Minute,
		endpointLimits: map[string]endpointLimit{
			// enrollment writes three documents per call
			"/api/member/create-member": {limit: rate.Every(2 * time.Second), burst: 5},
			// tree builds fan out over up to seven levels
			"/api/member/referral-tree": {limit: rate.Every(500 * time.Millisecond), burst: 5},
		},
	}
}

// SetEndpointLimit overrides the limit of one route path.
func (r *RateLimiter) SetEndpointLimit(path string, limit rate.Limit, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpointLimits[path] = endpointLimit{limit: limit, burst: burst}
}

// RunCleanup forgets expired blocks every interval until ctx is done.
func (r *RateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for ip, blockUntil := range r.blockedIPs {
				if now.After(blockUntil) {
					r.resetLocked(ip)
				}
			}
			r.mu.Unlock()
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			r.mu.Lock()
			if blockUntil, blocked := r.blockedIPs[ip]; blocked {
				if time.Now().Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, "IP address blocked due to too many requests", blockUntil)
				}
				r.resetLocked(ip)
			}

			limit, burst := r.defaultLimit, r.defaultBurst
			if l, ok := r.endpointLimits[c.Path()]; ok {
				limit, burst = l.limit, l.burst
			}
			key := ip + "|" + c.Path()
			limiter, ok := r.ips[key]
			if !ok {
				limiter = rate.NewLimiter(limit, burst)
				r.ips[key] = limiter
			}
			r.mu.Unlock()

			if !limiter.Allow() {
				blockUntil := time.Now().Add(r.blockDuration)
				r.mu.Lock()
				r.blockedIPs[ip] = blockUntil
				r.mu.Unlock()
				return tooManyRequests(c, "Too many requests", blockUntil)
			}

			return next(c)
		}
	}
}

// resetLocked forgets the block and the limiters of ip. r.mu must be held.
func (r *RateLimiter) resetLocked(ip string) {
	delete(r.blockedIPs, ip)
	for key := range r.ips {
		if strings.HasPrefix(key, ip+"|") {
			delete(r.ips, key)
		}
	}
}

func tooManyRequests(c echo.Context, message string, retryAfter time.Time) error {
	c.Response().Header().Set("Retry-After", retryAfter.UTC().Format(http.TimeFormat))
	return c.JSON(http.StatusTooManyRequests, models.Response{
		Status:  http.StatusTooManyRequests,
		Message: message,
		Data:    map[string]string{"retryAfter": retryAfter.Format(time.RFC3339)},
	})
}
