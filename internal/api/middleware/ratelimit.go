package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/api/metrics"
	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/ratelimit"
)

const (
	headerRemaining = "X-Rate-Limit-Remaining"
	headerForwarded = "X-Forwarded-For"
)

// RateLimit admits requests through the per-client token bucket limiter.
// Admitted requests carry X-Rate-Limit-Remaining; rejected ones get a 429
// problem detail with the retry-after header set by the error handler.
func RateLimit(limiter *ratelimit.Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := clientKey(c)
			result := limiter.TryConsume(key, 1)
			if !result.Allowed {
				metrics.RateLimitRejectedTotal.WithLabelValues(c.Request().URL.Path).Inc()
				log.Warn().
					Str("client", key).
					Str("path", c.Request().URL.Path).
					Int64("retry_after_seconds", result.RetryAfter).
					Msg("rate limit exceeded")
				return domain.NewRateLimited(
					"Rate limit exceeded. Try again in "+strconv.FormatInt(result.RetryAfter, 10)+" seconds.",
					result.RetryAfter,
				)
			}

			c.Response().Header().Set(headerRemaining, strconv.FormatInt(result.Remaining, 10))
			return next(c)
		}
	}
}

// clientKey identifies the client: the first X-Forwarded-For entry when the
// request came through a proxy, the remote IP otherwise.
func clientKey(c echo.Context) string {
	if xff := c.Request().Header.Get(headerForwarded); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	return c.RealIP()
}
