package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/models"
)

// TokenBlacklist records tokens revoked before their expiry.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, expiry time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const revokedKeyPrefix = "revoked_token:"

// defaultRevocationTTL applies to tokens without an expiry.
const defaultRevocationTTL = 30 * 24 * time.Hour

func revocationTTL(expiry time.Time) time.Duration {
	if expiry.IsZero() {
		return defaultRevocationTTL
	}
	return time.Until(expiry)
}

// RedisBlacklist keeps revoked tokens in Redis until they expire.
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, token string, expiry time.Time) error {
	ttl := revocationTTL(expiry)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlacklist is the in-process fallback used when Redis is unavailable.
type MemoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{tokens: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, token string, expiry time.Time) error {
	ttl := revocationTTL(expiry)
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	until, ok := b.tokens[token]
	return ok && time.Now().Before(until), nil
}

// Cleanup drops expired entries.
func (b *MemoryBlacklist) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	for token, until := range b.tokens {
		if now.After(until) {
			delete(b.tokens, token)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (b *MemoryBlacklist) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Cleanup()
		}
	}
}

// RejectRevoked runs after JWTMiddleware and refuses tokens found in blacklist.
func RejectRevoked(blacklist TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := RawToken(c)
			if token == "" {
				return next(c)
			}
			revoked, err := blacklist.IsRevoked(c.Request().Context(), token)
			if err != nil {
				RequestLogger(c).Error().Err(err).Msg("Token blacklist lookup failed")
				return c.JSON(http.StatusServiceUnavailable, models.Response{
					Status:  http.StatusServiceUnavailable,
					Message: "Unable to verify token",
				})
			}
			if revoked {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Token has been invalidated",
				})
			}
			return next(c)
		}
	}
}
