package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/pkg/validate"
)

// TicketService is the help-desk intake. A ticket is stored before the
// notification is attempted, and a failed notification never undoes it.
type TicketService struct {
	tickets   ports.TicketRepository
	users     ports.UserRepository
	notifier  ports.Notifier
	auditor   ports.Auditor
	log       zerolog.Logger
	adminOnly bool
	now       func() time.Time
}

func NewTicketService(tickets ports.TicketRepository, users ports.UserRepository, notifier ports.Notifier, auditor ports.Auditor, log zerolog.Logger, adminOnly bool) *TicketService {
	return &TicketService{
		tickets:   tickets,
		users:     users,
		notifier:  notifier,
		auditor:   auditor,
		log:       log,
		adminOnly: adminOnly,
		now:       time.Now,
	}
}

func (s *TicketService) Submit(ctx context.Context, actor *domain.Identity, in ports.TicketInput, meta domain.RequestMeta) (*ports.TicketReceipt, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	in.ProblemType = strings.TrimSpace(in.ProblemType)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	priority := domain.TicketPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ticket, err := s.tickets.Create(ctx, &domain.HelpTicket{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.Name,
		ProblemType: in.ProblemType,
		Subject:     in.Subject,
		Message:     in.Message,
		Priority:    priority,
		Status:      domain.TicketOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create help ticket: %w", err)
	}

	receipt := &ports.TicketReceipt{Ticket: ticket}
	status := domain.ActivitySuccess
	if err := s.notifier.NotifyHelpTicket(ctx, ticket); err != nil {
		s.log.Warn().Err(err).Str("ticket_id", ticket.ID).Msg("help ticket notification failed")
		receipt.Warning = domain.WarningNotificationFailed
		status = domain.ActivityWarning
	}

	s.auditor.Record(ctx, audit(actor.ID, domain.ActionHelpTicketSubmitted, domain.ResourceSupportSystem,
		fmt.Sprintf("Submitted help ticket: %s - %s (Priority: %s)", ticket.ProblemType, ticket.Subject, ticket.Priority),
		status, meta))
	return receipt, nil
}

// Get returns a ticket to its owner or to an admin. Other callers get
// ErrTicketNotFound so ticket ids cannot be probed.
func (s *TicketService) Get(ctx context.Context, viewer *domain.Identity, id string) (*domain.HelpTicket, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != viewer.ID && !domain.IsAuthorized(viewer, domain.RoleAdmin) {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}

// ListMine pages through the caller's own tickets, newest first.
func (s *TicketService) ListMine(ctx context.Context, viewer *domain.Identity, status string, page, pageSize int) (*ports.TicketPage, error) {
	if err := s.authorize(viewer); err != nil {
		return nil, err
	}
	page, pageSize = normalizePage(page, pageSize)

	items, total, err := s.tickets.List(ctx, ports.TicketFilter{
		UserID:   viewer.ID,
		Status:   allOrEmpty(status),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list help tickets: %w", err)
	}
	return &ports.TicketPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *TicketService) authorize(actor *domain.Identity) error {
	if s.adminOnly {
		return requireAdmin(actor)
	}
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}
