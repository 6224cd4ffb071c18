package ports

import (
	"context"
	"time"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// RegisterInput carries the fields for admin-driven account creation.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"omitempty,oneof=admin user"`
}

// AdminSignupInput carries a self-service admin sign-up guarded by a shared code.
type AdminSignupInput struct {
	Name       string `validate:"required"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=6"`
	SignupCode string
}

type AuthService interface {
	Login(ctx context.Context, email, password string, meta domain.RequestMeta) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string, meta domain.RequestMeta)
	CurrentUser(ctx context.Context, id *domain.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, id *domain.Identity, upd ProfileUpdate, meta domain.RequestMeta) (*domain.User, error)
	ChangePassword(ctx context.Context, id *domain.Identity, current, next string, meta domain.RequestMeta) error
	Register(ctx context.Context, actor *domain.Identity, in RegisterInput, meta domain.RequestMeta) (*domain.User, error)
	BootstrapAdmin(ctx context.Context, in AdminSignupInput, meta domain.RequestMeta) (*domain.User, error)
}

// SessionVerifier turns a raw session token into an identity. It returns nil
// for any missing, malformed, expired or revoked token.
type SessionVerifier interface {
	Authenticate(ctx context.Context, rawToken string) *domain.Identity
}

// SessionDenylist stores revoked token ids until their natural expiry.
type SessionDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
