package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

func TestContactService_Contact(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewContactService(notifier, zerolog.Nop())

	err := svc.Contact(context.Background(), ports.ContactInput{
		Name: "Omar", Email: " Omar@Example.com", Phone: "+91 98", Subject: "Visa", Message: "When?",
	})
	if err != nil {
		t.Fatalf("contact: %v", err)
	}
	if len(notifier.contacts) != 1 || notifier.contacts[0].Email != "omar@example.com" {
		t.Fatalf("unexpected contacts: %+v", notifier.contacts)
	}

	var ve *domain.ValidationError
	if err := svc.Contact(context.Background(), ports.ContactInput{Name: "Omar"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestContactService_Apply(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewContactService(notifier, zerolog.Nop())
	in := ports.ApplicationInput{
		Name: "Priya", Email: "priya@example.com", Phone: "+91 99", JobRole: "Electrician", Country: "Qatar",
	}

	var ve *domain.ValidationError
	if err := svc.Apply(context.Background(), in); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for missing resume, got %v", err)
	}

	in.Resume = &domain.Attachment{Filename: "cv.pdf", Content: []byte("%PDF")}
	if err := svc.Apply(context.Background(), in); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(notifier.applications) != 1 || notifier.applications[0].Resume.Filename != "cv.pdf" {
		t.Fatalf("unexpected applications: %+v", notifier.applications)
	}
}

func TestContactService_DeliveryFailureIsOpaque(t *testing.T) {
	svc := NewContactService(&stubNotifier{err: errors.New("535 auth failed for smtp.example.com")}, zerolog.Nop())

	err := svc.Contact(context.Background(), ports.ContactInput{
		Name: "Omar", Email: "omar@example.com", Phone: "1", Subject: "s", Message: "m",
	})
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}
