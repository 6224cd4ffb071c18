package ports

import (
	"context"
	"time"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// ProfileUpdate holds the self-editable account fields.
type ProfileUpdate struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Bio     string
}

// UserRepository defines persistence for accounts. Emails are stored
// normalized and are unique across all users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// EmailTaken reports whether another account (not excludeID) uses email.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	ExistsWithRole(ctx context.Context, role string) (bool, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate, at time.Time) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
}
