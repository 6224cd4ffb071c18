package ports

import (
	"context"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// Notifier delivers transactional e-mail.
type Notifier interface {
	NotifyHelpTicket(ctx context.Context, ticket *domain.HelpTicket) error
	SendContactMessage(ctx context.Context, msg domain.ContactMessage) error
	SendJobApplication(ctx context.Context, app domain.JobApplication) error
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required"`
	Subject string `validate:"required"`
	Message string `validate:"required"`
}

// ApplicationInput is the public apply form.
type ApplicationInput struct {
	Name       string `validate:"required"`
	Email      string `validate:"required,email"`
	Phone      string `validate:"required"`
	JobRole    string `validate:"required"`
	Country    string
	Experience string
	Message    string
	Resume     *domain.Attachment
}

type ContactService interface {
	Contact(ctx context.Context, in ContactInput) error
	Apply(ctx context.Context, in ApplicationInput) error
}
