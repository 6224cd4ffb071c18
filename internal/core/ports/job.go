package ports

import (
	"context"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

// JobFilter carries the public listing filters. Empty strings and the
// "All Trades"/"All Countries" sentinels mean no filter.
type JobFilter struct {
	Search       string
	Trade        string
	Country      string
	FeaturedOnly bool
}

// JobRepository defines persistence for job postings.
type JobRepository interface {
	// List returns matching jobs sorted by posting date, newest first.
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	// Replace overwrites every mutable field of the stored job.
	Replace(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// JobInput is the full payload for creating a job.
type JobInput struct {
	Title            string   `validate:"required,min=2"`
	Company          string   `validate:"required"`
	Location         string   `validate:"required"`
	Country          string   `validate:"required"`
	Salary           string   `validate:"required"`
	Description      string   `validate:"required,min=10"`
	Responsibilities []string `validate:"required,min=1,dive,required"`
	Requirements     []string `validate:"required,min=1,dive,required"`
	Benefits         []string `validate:"required,min=1,dive,required"`
	Type             string   `validate:"required"`
	Experience       string   `validate:"required"`
	Trade            string   `validate:"required"`
	Featured         bool
	Date             string `validate:"omitempty,datetime=2006-01-02"`
}

// JobPatch is a partial update: nil fields keep their stored value.
type JobPatch struct {
	Title            *string
	Company          *string
	Location         *string
	Country          *string
	Salary           *string
	Description      *string
	Responsibilities []string
	Requirements     []string
	Benefits         []string
	Type             *string
	Experience       *string
	Trade            *string
	Featured         *bool
	Date             *string
}

type JobService interface {
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, actor *domain.Identity, in JobInput, meta domain.RequestMeta) (*domain.Job, error)
	Update(ctx context.Context, actor *domain.Identity, id string, patch JobPatch, meta domain.RequestMeta) (*domain.Job, error)
	Delete(ctx context.Context, actor *domain.Identity, id string, meta domain.RequestMeta) error
}
