package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/pkg/validate"
)

// ContactService forwards public form submissions by e-mail. Nothing is persisted.
type ContactService struct {
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewContactService(notifier ports.Notifier, log zerolog.Logger) *ContactService {
	return &ContactService{notifier: notifier, log: log}
}

func (s *ContactService) Contact(ctx context.Context, in ports.ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := validate.Struct(&in); err != nil {
		return err
	}

	err := s.notifier.SendContactMessage(ctx, domain.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	})
	return s.delivery(err, "contact")
}

func (s *ContactService) Apply(ctx context.Context, in ports.ApplicationInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.JobRole = strings.TrimSpace(in.JobRole)
	if err := validate.Struct(&in); err != nil {
		return err
	}
	if in.Resume == nil || len(in.Resume.Content) == 0 {
		return domain.NewValidationError("resume is required")
	}

	err := s.notifier.SendJobApplication(ctx, domain.JobApplication{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		JobRole:    in.JobRole,
		Country:    strings.TrimSpace(in.Country),
		Experience: strings.TrimSpace(in.Experience),
		Message:    strings.TrimSpace(in.Message),
		Resume:     *in.Resume,
	})
	return s.delivery(err, "application")
}

// delivery hides transport errors from callers behind ErrDeliveryFailed.
func (s *ContactService) delivery(err error, kind string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMailerDisabled) {
		return err
	}
	s.log.Error().Err(err).Str("kind", kind).Msg("failed to send form e-mail")
	return fmt.Errorf("%w: %s", domain.ErrDeliveryFailed, kind)
}
