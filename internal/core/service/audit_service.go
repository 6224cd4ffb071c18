package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/pkg/metrics"
	"github.com/sunshine-recruitment/portal/internal/pkg/validate"
)

const defaultAuditTimeout = 5 * time.Second

// AuditReporter receives audit writes that could not be stored.
type AuditReporter func(err error, entry domain.ActivityLog)

// AuditService records and queries the activity log.
type AuditService struct {
	repo    ports.ActivityRepository
	log     zerolog.Logger
	report  AuditReporter
	now     func() time.Time
	timeout time.Duration
}

type AuditOption func(*AuditService)

// WithAuditReporter replaces the default log-based failure reporter.
func WithAuditReporter(r AuditReporter) AuditOption {
	return func(s *AuditService) { s.report = r }
}

// WithAuditClock overrides the time source used to stamp entries.
func WithAuditClock(now func() time.Time) AuditOption {
	return func(s *AuditService) { s.now = now }
}

func NewAuditService(repo ports.ActivityRepository, log zerolog.Logger, opts ...AuditOption) *AuditService {
	s := &AuditService{
		repo:    repo,
		log:     log,
		now:     time.Now,
		timeout: defaultAuditTimeout,
	}
	s.report = s.logFailure
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores entry and never fails the caller. The write runs on a
// context detached from request cancellation so an aborted client cannot
// drop the entry.
func (s *AuditService) Record(ctx context.Context, entry domain.ActivityLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
	if entry.Status == "" {
		entry.Status = domain.ActivitySuccess
	}
	if entry.IPAddress == "" {
		entry.IPAddress = "unknown"
	}
	if entry.UserAgent == "" {
		entry.UserAgent = "unknown"
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if _, err := s.repo.Insert(writeCtx, &entry); err != nil {
		metrics.AuditWritesTotal.WithLabelValues("failed").Inc()
		s.report(err, entry)
		return
	}
	metrics.AuditWritesTotal.WithLabelValues("ok").Inc()
}

// Query returns one page of audit entries. Admins see every entry; any other
// identity only sees its own.
func (s *AuditService) Query(ctx context.Context, viewer *domain.Identity, filter ports.ActivityFilter) (*ports.ActivityPage, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !domain.IsAuthorized(viewer, domain.RoleAdmin) {
		filter.UserID = viewer.ID
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	filter.Status = allOrEmpty(filter.Status)
	filter.Action = allOrEmpty(filter.Action)

	items, total, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}

	return &ports.ActivityPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

// Submit stores a client-reported entry attributed to actor.
func (s *AuditService) Submit(ctx context.Context, actor *domain.Identity, in ports.ActivityInput, meta domain.RequestMeta) (string, error) {
	if actor == nil {
		return "", domain.ErrUnauthenticated
	}
	if err := validate.Struct(&in); err != nil {
		return "", err
	}
	status := domain.ActivityStatus(in.Status)
	if status == "" {
		status = domain.ActivitySuccess
	}

	entry := &domain.ActivityLog{
		UserID:    actor.ID,
		Action:    in.Action,
		Resource:  in.Resource,
		Details:   in.Details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Timestamp: s.now().UTC(),
		Status:    status,
	}
	id, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("insert activity: %w", err)
	}
	return id, nil
}

func (s *AuditService) logFailure(err error, entry domain.ActivityLog) {
	s.log.Warn().Err(err).
		Str("action", entry.Action).
		Str("resource", entry.Resource).
		Str("user_id", entry.UserID).
		Msg("failed to write activity log")
}

// audit builds an entry stamped with the request's network details.
func audit(userID, action, resource, details string, status domain.ActivityStatus, meta domain.RequestMeta) domain.ActivityLog {
	return domain.ActivityLog{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Status:    status,
	}
}
