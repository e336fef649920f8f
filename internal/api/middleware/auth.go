package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// Auth validates the bearer token and resolves its subject to a fresh user
// record on every request, so role changes and deletions take effect
// immediately. Username and role are injected into the echo context.
func Auth(codec ports.TokenCodec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return domain.NewUnauthenticated("Missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.NewUnauthenticated("Invalid authorization header")
			}

			subject, err := codec.Verify(parts[1])
			if err != nil {
				return domain.NewUnauthenticated("Invalid or expired token")
			}

			// Only a missing user means the token is stale. Anything else
			// (an infrastructure failure, say) must surface as-is so it maps
			// to 500, not 401.
			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if domain.AsError(err).Kind == domain.KindNotFound {
					return domain.NewUnauthenticated("Invalid or expired token")
				}
				return err
			}

			c.Set(ContextUsername, user.Username)
			c.Set(ContextRole, user.Role)
			return next(c)
		}
	}
}
