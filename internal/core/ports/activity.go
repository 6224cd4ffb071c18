package ports

import (
	"context"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// ActivityFilter carries audit query parameters. UserID restricts results to
// a single actor; empty means all actors.
type ActivityFilter struct {
	UserID   string
	Status   string // exact; "" or "all" = no filter
	Action   string // case-insensitive substring
	Search   string // case-insensitive substring over resource and details
	Page     int    // 1-based
	PageSize int
}

// ActivityRepository is the append-only audit store.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) (string, error)
	// Query returns one page sorted by timestamp, newest first, and the total match count.
	Query(ctx context.Context, filter ActivityFilter) ([]*domain.ActivityLog, int64, error)
}

// ActivityPage is one page of audit entries.
type ActivityPage struct {
	Items      []*domain.ActivityLog
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ActivityInput is a client-reported audit entry.
type ActivityInput struct {
	Action   string `validate:"required"`
	Resource string `validate:"required"`
	Details  string `validate:"required"`
	Status   string `validate:"omitempty,oneof=success failed error warning"`
}

// Auditor records audit entries. Record never fails from the caller's point
// of view; write errors go to the operator log.
type Auditor interface {
	Record(ctx context.Context, entry domain.ActivityLog)
}

type AuditService interface {
	Auditor
	Query(ctx context.Context, viewer *domain.Identity, filter ActivityFilter) (*ActivityPage, error)
	Submit(ctx context.Context, actor *domain.Identity, in ActivityInput, meta domain.RequestMeta) (string, error)
}
