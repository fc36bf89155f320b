package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techtoearth/onboarding-service/internal/dto"
	"github.com/techtoearth/onboarding-service/internal/service"
)

// RateLimitMiddleware limits requests per key inside a sliding window.
func RateLimitMiddleware(rateLimiter *service.RateLimiter, limit int, window time.Duration, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		allowed, err := rateLimiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			if strings.Contains(err.Error(), "rate limit exceeded") {
				c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
				c.Header("X-RateLimit-Retry-After", retryAfter(err.Error()))
				setRemainingHeader(c, rateLimiter, key, limit, window)

				c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
					Error:   "Too Many Requests",
					Message: err.Error(),
				})
				c.Abort()
				return
			}

			// Redis errors fail open so an outage never blocks sign-in.
			c.Next()
			return
		}

		if !allowed {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			setRemainingHeader(c, rateLimiter, key, limit, window)

			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "Too Many Requests",
				Message: "Rate limit exceeded",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		setRemainingHeader(c, rateLimiter, key, limit, window)

		c.Next()
	}
}

func setRemainingHeader(c *gin.Context, rateLimiter *service.RateLimiter, key string, limit int, window time.Duration) {
	remaining, err := rateLimiter.Remaining(c.Request.Context(), key, limit, window)
	if err != nil {
		return
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
}

// IPBasedKey extracts the rate limit key from the client IP
func IPBasedKey(c *gin.Context) string {
	ip := c.GetHeader("X-Forwarded-For")
	if ip != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}
	return c.ClientIP()
}

// retryAfter extracts the wait time from an error message like
// "rate limit exceeded, try again in 45s".
func retryAfter(errMsg string) string {
	if strings.Contains(errMsg, "try again in") {
		parts := strings.Split(errMsg, "try again in")
		if len(parts) > 1 {
			return strings.TrimSpace(parts[1])
		}
	}
	return "60"
}
