package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth: a
// request with no role in context was never authenticated and gets 401,
// an authenticated request with a role outside the allowed set gets 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				return domain.NewUnauthenticated("Missing authentication")
			}
			if _, ok := allowed[role]; !ok {
				return domain.NewForbidden("Insufficient role for this operation")
			}
			return next(c)
		}
	}
}
