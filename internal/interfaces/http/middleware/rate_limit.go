package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auto-diag.backend/internal/usecases"
	"auto-diag.backend/pkg/logger"
)

// RateLimit enforces the authenticated key's rolling per-minute limit. It
// must run after APIKeyAuth. Admitted requests may probabilistically trigger
// a janitor sweep of expired bookkeeping rows.
func RateLimit(limiter *usecases.RateLimiterUsecase, janitor *usecases.JanitorUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := APIKeyFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error.",
			})
			return
		}

		decision, err := limiter.Admit(c, key.KeyHash, key.RateLimitPerMinute)
		if err != nil {
			logger.Error(c, "rate limit check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error.",
			})
			return
		}

		if !decision.Allowed {
			// always the fixed bound, never the remaining window time
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":               "Rate limit exceeded.",
				"limit_per_minute":    decision.Limit,
				"retry_after_seconds": 60,
			})
			return
		}

		janitor.MaybeSweep()
		c.Next()
	}
}
