package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const submissionWindow = 24 * time.Hour

// ReportRateLimiter caps report submissions per user per rolling day using
// a redis counter with a TTL set on the first increment. A nil client
// disables the limiter.
func ReportRateLimiter(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		principal, ok := MustPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}

		ctx := c.Request.Context()
		key := "reports:submissions:" + principal.UserID.String()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limiter unavailable"})
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, submissionWindow).Err(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limiter unavailable"})
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "daily report limit reached",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
