package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

// RateLimit enforces the redis sliding-window limits per client IP. Used on
// the auth endpoints where credential stuffing is the concern. Redis being
// down fails open: blocking all logins is worse than briefly not limiting
// them.
func RateLimit(limiter ratelimit.RateLimiter, cfg config.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	limits := ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.RequestsPerMinute,
		RequestsPerHour:   cfg.RequestsPerHour,
		RequestsPerDay:    cfg.RequestsPerDay,
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		key := "auth:" + c.ClientIP()

		allowed, err := limiter.Allow(key, limits)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
