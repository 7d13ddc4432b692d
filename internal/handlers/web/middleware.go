package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitKeyPrefix   = "ratelimit:"
	rateLimitMaxRequests = 10
	rateLimitWindow      = 60 * time.Second
)

// RateLimiter returns middleware that caps requests per endpoint using a
// fixed counter window in Redis. Passing a nil client disables limiting.
func RateLimiter(client *redis.Client, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	if client == nil {
		logger.Warn("no redis client configured, rate limiting disabled")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, c.Request.Method, c.FullPath())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// The limiter is protection, not a dependency; a broken
			// counter must not take the API down with it.
			logger.Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
				logger.Warn("failed to set rate limit window", "error", err)
			}
		}

		if count > rateLimitMaxRequests {
			c.Header("Retry-After", strconv.Itoa(int(rateLimitWindow.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
