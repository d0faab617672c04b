package middleware

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"recipe_api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

//go:embed rate_limiter.lua
var luaScript string

// RateLimiterConfig holds rate limiter configuration
type RateLimiterConfig struct {
	Capacity   int     // Maximum number of tokens (max requests)
	RefillRate float64 // Tokens refilled per second
}

// KeyFunc derives the bucket key for a request.
type KeyFunc func(c *gin.Context) (string, bool)

// ByClientIP buckets requests per remote address and endpoint. Used on
// the public auth endpoints where no user identity exists yet.
func ByClientIP() KeyFunc {
	return func(c *gin.Context) (string, bool) {
		return fmt.Sprintf("rate_limiter:ip:%s:%s", c.ClientIP(), c.Request.URL.Path), true
	}
}

// ByUserID buckets requests per authenticated user. Must run after the
// session middleware.
func ByUserID() KeyFunc {
	return func(c *gin.Context) (string, bool) {
		userID, err := auth.GetUserIDFromContext(c)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("rate_limiter:user:%d", userID), true
	}
}

// RateLimiterMiddleware implements the Token Bucket algorithm using Redis + Lua script
func RateLimiterMiddleware(redisClient *redis.Client, config *RateLimiterConfig, keyFn KeyFunc) gin.HandlerFunc {
	// Load Lua script into Redis (SHA hash will be cached)
	ctx := context.Background()
	scriptSHA, err := redisClient.ScriptLoad(ctx, luaScript).Result()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load Lua script for rate limiter")
	}

	return func(c *gin.Context) {
		key, ok := keyFn(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		now := time.Now().Unix()

		result, err := redisClient.EvalSha(ctx, scriptSHA, []string{key},
			config.Capacity,
			config.RefillRate,
			now,
		).Result()

		if err != nil {
			logrus.WithError(err).Error("Failed to execute rate limiter Lua script")
			// Fail open: allow request if Redis fails
			c.Next()
			return
		}

		allowed := result.(int64)
		if allowed == 0 {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": fmt.Sprintf("%.1f seconds", 1.0/config.RefillRate),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
