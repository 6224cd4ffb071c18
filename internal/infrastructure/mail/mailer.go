// Package mail delivers the portal's transactional e-mail over SMTP.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// Config holds SMTP credentials and recipients. An empty Host disables
// delivery; every send then fails with domain.ErrMailerDisabled.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	To         string // contact and application forms
	HelpDeskTo string // help tickets; falls back to To
	Timeout    time.Duration
}

// Mailer implements ports.Notifier with gomail.
type Mailer struct {
	cfg  Config
	send func(*gomail.Message) error
	log  zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HelpDeskTo == "" {
		cfg.HelpDeskTo = cfg.To
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		cfg:  cfg,
		send: func(m *gomail.Message) error { return d.DialAndSend(m) },
		log:  log,
	}
}

func (m *Mailer) NotifyHelpTicket(ctx context.Context, t *domain.HelpTicket) error {
	msg, err := helpTicketMessage(m.cfg.From, m.cfg.HelpDeskTo, t, time.Now())
	if err != nil {
		return err
	}
	return m.deliver(ctx, "help_ticket", msg)
}

func (m *Mailer) SendContactMessage(ctx context.Context, c domain.ContactMessage) error {
	msg, err := contactMessage(m.cfg.From, m.cfg.To, c)
	if err != nil {
		return err
	}
	return m.deliver(ctx, "contact", msg)
}

func (m *Mailer) SendJobApplication(ctx context.Context, a domain.JobApplication) error {
	msg, err := applicationMessage(m.cfg.From, m.cfg.To, a)
	if err != nil {
		return err
	}
	return m.deliver(ctx, "application", msg)
}

// deliver sends msg without letting a slow SMTP server hold the request past
// the configured timeout. The dial keeps running in the background if it
// overruns; its result is only logged.
func (m *Mailer) deliver(ctx context.Context, kind string, msg *gomail.Message) error {
	if m.cfg.Host == "" {
		metrics.NotificationsTotal.WithLabelValues(kind, "disabled").Inc()
		return domain.ErrMailerDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- m.send(msg) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	metrics.NotificationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(kind, "failed").Inc()
		m.log.Warn().Err(err).Str("kind", kind).Msg("mail delivery failed")
		return fmt.Errorf("send %s mail: %w", kind, err)
	}
	metrics.NotificationsTotal.WithLabelValues(kind, "sent").Inc()
	m.log.Info().Str("kind", kind).Msg("mail sent")
	return nil
}
