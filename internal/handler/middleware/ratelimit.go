package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"mokka-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
	cfg    config.RedisConfig
}

// NewRateLimiter with a nil client disables limiting, which is how local
// setups without redis run.
func NewRateLimiter(client *redis.Client, cfg config.RedisConfig) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg}
}

// Limit is a fixed-window counter per client IP and route. Redis being down
// fails open; throttling is protection for the mailer quota, not a security
// boundary.
func (r *RateLimiter) Limit(scope string) gin.HandlerFunc {
	if r.client == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rl:%s:%s", scope, c.ClientIP())

		count, err := r.client.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			if err := r.client.Expire(ctx, key, r.cfg.RateLimitWindow).Err(); err != nil {
				slog.Warn("failed to set rate limit window", "error", err.Error())
			}
		}

		if count > int64(r.cfg.RateLimitRequests) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
