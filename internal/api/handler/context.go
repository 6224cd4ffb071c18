package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/api/middleware"
	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

const unknown = "unknown"

// ctxIdentity returns the identity injected by the Auth middleware. Handlers
// mounted behind Auth always have one; the check keeps a misconfigured route
// from reaching a service with a nil identity.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.Identity(c)
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

// requestMeta captures the caller's network details for the audit trail.
func requestMeta(c echo.Context) domain.RequestMeta {
	meta := domain.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if meta.IPAddress == "" {
		meta.IPAddress = unknown
	}
	if meta.UserAgent == "" {
		meta.UserAgent = unknown
	}
	return meta
}

// bindJSON decodes the request body, reporting any decode failure as a 400.
func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return nil
}
