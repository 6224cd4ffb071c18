package ports

import (
	"context"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// TicketFilter scopes a ticket listing to one user.
type TicketFilter struct {
	UserID   string
	Status   string // "" or "all" = no filter
	Page     int
	PageSize int
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.HelpTicket) (*domain.HelpTicket, error)
	FindByID(ctx context.Context, id string) (*domain.HelpTicket, error)
	List(ctx context.Context, filter TicketFilter) ([]*domain.HelpTicket, int64, error)
}

// TicketInput is a help-desk submission.
type TicketInput struct {
	ProblemType string `validate:"required"`
	Subject     string `validate:"required"`
	Message     string `validate:"required"`
	Priority    string `validate:"omitempty,oneof=low medium high urgent"`
}

// TicketReceipt is returned on submission. Warning is set when the ticket was
// stored but the notification could not be sent.
type TicketReceipt struct {
	Ticket  *domain.HelpTicket
	Warning string
}

// TicketPage is one page of a user's tickets.
type TicketPage struct {
	Items      []*domain.HelpTicket
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type TicketService interface {
	Submit(ctx context.Context, actor *domain.Identity, in TicketInput, meta domain.RequestMeta) (*TicketReceipt, error)
	Get(ctx context.Context, viewer *domain.Identity, id string) (*domain.HelpTicket, error)
	ListMine(ctx context.Context, viewer *domain.Identity, status string, page, pageSize int) (*TicketPage, error)
}
