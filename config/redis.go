package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// ConnectRedis establishes connection to Redis. It returns nil when Redis is unreachable;
// callers fall back to in-process state.
func ConnectRedis(ctx context.Context, cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis connection failed, token revocation is kept in memory")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return client
}
