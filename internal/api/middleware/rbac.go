package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// RBAC requires the identity set by Auth to hold role. A missing identity is
// reported as unauthenticated so callers can tell 401 from 403.
func RBAC(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := Identity(c)
			if id == nil {
				return domain.ErrUnauthenticated
			}
			if !domain.IsAuthorized(id, role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

