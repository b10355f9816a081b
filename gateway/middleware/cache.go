package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/retail-inventory/pkg/logger"
)

// CacheConfig holds cache configuration
type CacheConfig struct {
	DefaultTTL      time.Duration
	CacheableStatus []int
}

// DefaultCacheConfig returns default cache configuration. The TTL is short
// because the dashboard reports behind the gateway change with every return.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:      time.Minute,
		CacheableStatus: []int{200, 203, 301, 404},
	}
}

// CacheMiddleware caches GET responses in Redis
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		cacheKey := generateCacheKey(c)

		ctx := context.Background()
		cached, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cached)
		}

		err = c.Next()

		statusCode := c.Response().StatusCode()
		if isStatusCacheable(statusCode, config.CacheableStatus) {
			body := c.Response().Body()

			if cacheErr := redisClient.Set(ctx, cacheKey, body, config.DefaultTTL).Err(); cacheErr != nil {
				logger.Logger.Warn().
					Err(cacheErr).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
			}

			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

// generateCacheKey builds a key from method, path, query and identity
func generateCacheKey(c *fiber.Ctx) string {
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}

func isStatusCacheable(status int, cacheable []int) bool {
	for _, s := range cacheable {
		if s == status {
			return true
		}
	}
	return false
}
