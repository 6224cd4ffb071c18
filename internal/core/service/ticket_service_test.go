package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

func newTestTicketService(t *testing.T, adminOnly bool, notifyErr error) (*TicketService, *stubTicketRepo, *stubNotifier, *stubActivityRepo, *domain.Identity) {
	t.Helper()
	users := newStubUserRepo()
	u := seedUser(t, users, "Lena", "lena@example.com", "secret1", domain.RoleUser)
	tickets := newStubTicketRepo()
	notifier := &stubNotifier{err: notifyErr}
	activity := &stubActivityRepo{}
	svc := NewTicketService(tickets, users, notifier, NewAuditService(activity, zerolog.Nop()), zerolog.Nop(), adminOnly)
	return svc, tickets, notifier, activity, &domain.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

var validTicket = ports.TicketInput{
	ProblemType: "Technical",
	Subject:     "Cannot upload image",
	Message:     "The upload button does nothing.",
	Priority:    "high",
}

func TestTicketService_Submit_Success(t *testing.T) {
	svc, _, notifier, activity, lena := newTestTicketService(t, false, nil)

	receipt, err := svc.Submit(context.Background(), lena, validTicket, testMeta)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Warning != "" {
		t.Fatalf("unexpected warning %q", receipt.Warning)
	}
	tk := receipt.Ticket
	if tk.Status != domain.TicketOpen || tk.UserName != "Lena" || tk.UserEmail != "lena@example.com" {
		t.Fatalf("unexpected ticket: %+v", tk)
	}
	if len(notifier.tickets) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.tickets))
	}
	if entry := activity.last(); entry.Action != domain.ActionHelpTicketSubmitted || entry.Status != domain.ActivitySuccess {
		t.Fatalf("unexpected audit: %+v", entry)
	}
}

func TestTicketService_Submit_NotificationFailure(t *testing.T) {
	svc, _, _, activity, lena := newTestTicketService(t, false, errors.New("smtp timeout"))
	ctx := context.Background()

	receipt, err := svc.Submit(ctx, lena, validTicket, testMeta)
	if err != nil {
		t.Fatalf("submit should succeed despite notifier failure: %v", err)
	}
	if receipt.Warning != domain.WarningNotificationFailed {
		t.Fatalf("expected warning %q, got %q", domain.WarningNotificationFailed, receipt.Warning)
	}

	got, err := svc.Get(ctx, lena, receipt.Ticket.ID)
	if err != nil {
		t.Fatalf("ticket not retrievable: %v", err)
	}
	if got.Status != domain.TicketOpen {
		t.Fatalf("expected open ticket, got %s", got.Status)
	}
	if entry := activity.last(); entry.Status != domain.ActivityWarning {
		t.Fatalf("expected warning audit, got %+v", entry)
	}
}

func TestTicketService_Submit_Rejections(t *testing.T) {
	svc, tickets, notifier, _, lena := newTestTicketService(t, false, nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, nil, validTicket, testMeta); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	missing := validTicket
	missing.Subject = "   "
	var ve *domain.ValidationError
	if _, err := svc.Submit(ctx, lena, missing, testMeta); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	badPriority := validTicket
	badPriority.Priority = "critical"
	if _, err := svc.Submit(ctx, lena, badPriority, testMeta); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if len(tickets.tickets) != 0 || len(notifier.tickets) != 0 {
		t.Fatalf("rejected submissions caused side effects")
	}
}

func TestTicketService_AdminOnlyPolicy(t *testing.T) {
	svc, _, _, _, lena := newTestTicketService(t, true, nil)
	if _, err := svc.Submit(context.Background(), lena, validTicket, testMeta); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTicketService_GetAndListMine(t *testing.T) {
	svc, tickets, _, _, lena := newTestTicketService(t, false, nil)
	ctx := context.Background()

	receipt, err := svc.Submit(ctx, lena, validTicket, testMeta)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	tickets.Create(ctx, &domain.HelpTicket{UserID: "other", Subject: "not mine", Status: domain.TicketOpen})

	if _, err := svc.Get(ctx, userIdent, receipt.Ticket.ID); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("foreign viewer: expected ErrTicketNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, adminIdent, receipt.Ticket.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	page, err := svc.ListMine(ctx, lena, "all", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != receipt.Ticket.ID || page.PageSize != defaultPageSize {
		t.Fatalf("unexpected page: %+v", page)
	}
}
