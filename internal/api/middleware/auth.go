package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// IdentityKey is the echo context key holding the *domain.Identity of the caller.
const IdentityKey = "identity"

// Auth resolves the session token and injects the identity into context.
// Any missing, malformed, expired or revoked token ends the request with 401.
func Auth(verifier ports.SessionVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := SessionToken(c, cookieName)
			if raw == "" {
				return domain.ErrUnauthenticated
			}

			id := verifier.Authenticate(c.Request().Context(), raw)
			if id == nil {
				return domain.ErrUnauthenticated
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// SessionToken returns the raw token from the session cookie, falling back to
// an "Authorization: Bearer" header. It returns "" when neither is present.
func SessionToken(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Identity returns the identity set by Auth, or nil.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}
