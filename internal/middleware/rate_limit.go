package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the fixed time window requests are counted in
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix namespaces the Redis counters
	KeyPrefix string
}

// RateLimiter counts requests per user in Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

// NewRecipeCreationRateLimiter limits recipe creation to limit per hour per user
func NewRecipeCreationRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_create",
	})
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware. When Redis is unreachable requests are
// let through.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			slog.Warn("rate limit check failed", "prefix", rl.config.KeyPrefix, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rateLimitRejects.WithLabelValues(rl.config.KeyPrefix).Inc()
			c.Header("Retry-After", strconv.Itoa(int(resetTime.Sub(rl.now()).Seconds())+1))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("rate limit of %d requests per %v exceeded", rl.config.Limit, rl.config.Window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request from userID and reports whether it is within
// the limit, how many requests remain and when the window resets.
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}
