package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/pkg/metrics"
	"github.com/sunshine-recruitment/portal/internal/pkg/validate"
)

// JobService manages job postings. Reads are public; every mutation
// requires an admin identity and is audited.
type JobService struct {
	repo    ports.JobRepository
	auditor ports.Auditor
	log     zerolog.Logger
	now     func() time.Time
}

func NewJobService(repo ports.JobRepository, auditor ports.Auditor, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, auditor: auditor, log: log, now: time.Now}
}

func (s *JobService) List(ctx context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Trade == domain.AllTrades {
		filter.Trade = ""
	}
	if filter.Country == domain.AllCountries {
		filter.Country = ""
	}
	jobs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new posting. Date defaults to today when omitted.
func (s *JobService) Create(ctx context.Context, actor *domain.Identity, in ports.JobInput, meta domain.RequestMeta) (*domain.Job, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	in = trimJobInput(in)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if in.Date == "" {
		in.Date = now.Format(domain.DateLayout)
	}
	job := &domain.Job{
		Title:            in.Title,
		Company:          in.Company,
		Location:         in.Location,
		Country:          in.Country,
		Salary:           in.Salary,
		Description:      in.Description,
		Responsibilities: in.Responsibilities,
		Requirements:     in.Requirements,
		Benefits:         in.Benefits,
		Type:             in.Type,
		Experience:       in.Experience,
		Trade:            in.Trade,
		Featured:         in.Featured,
		Date:             in.Date,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	metrics.JobMutationsTotal.WithLabelValues("create").Inc()
	s.auditor.Record(ctx, audit(actor.ID, domain.ActionJobCreated, domain.ResourceJobManagement,
		fmt.Sprintf("Created job: %s at %s (%s)", created.Title, created.Company, created.Location),
		domain.ActivitySuccess, meta))
	s.log.Info().Str("job_id", created.ID).Str("user_id", actor.ID).Msg("job created")
	return created, nil
}

// Update merges patch onto the stored job and validates the result as a whole.
func (s *JobService) Update(ctx context.Context, actor *domain.Identity, id string, patch ports.JobPatch, meta domain.RequestMeta) (*domain.Job, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := applyJobPatch(jobToInput(current), patch)
	merged = trimJobInput(merged)
	if err := validate.Struct(&merged); err != nil {
		return nil, err
	}

	next := *current
	next.Title = merged.Title
	next.Company = merged.Company
	next.Location = merged.Location
	next.Country = merged.Country
	next.Salary = merged.Salary
	next.Description = merged.Description
	next.Responsibilities = merged.Responsibilities
	next.Requirements = merged.Requirements
	next.Benefits = merged.Benefits
	next.Type = merged.Type
	next.Experience = merged.Experience
	next.Trade = merged.Trade
	next.Featured = merged.Featured
	next.Date = merged.Date
	next.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Replace(ctx, &next)
	if err != nil {
		return nil, err
	}

	metrics.JobMutationsTotal.WithLabelValues("update").Inc()
	s.auditor.Record(ctx, audit(actor.ID, domain.ActionJobUpdated, domain.ResourceJobManagement,
		fmt.Sprintf("Updated job: %s at %s -> %s at %s (ID: %s)",
			current.Title, current.Company, updated.Title, updated.Company, updated.ID),
		domain.ActivitySuccess, meta))
	return updated, nil
}

// Delete removes a posting. A missing id yields ErrJobNotFound and no audit entry.
func (s *JobService) Delete(ctx context.Context, actor *domain.Identity, id string, meta domain.RequestMeta) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.JobMutationsTotal.WithLabelValues("delete").Inc()
	s.auditor.Record(ctx, audit(actor.ID, domain.ActionJobDeleted, domain.ResourceJobManagement,
		fmt.Sprintf("Deleted job: %s at %s (ID: %s)", current.Title, current.Company, current.ID),
		domain.ActivitySuccess, meta))
	return nil
}

// requireAdmin distinguishes a missing identity from an insufficient role.
func requireAdmin(actor *domain.Identity) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if !domain.IsAuthorized(actor, domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}

func jobToInput(j *domain.Job) ports.JobInput {
	return ports.JobInput{
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Country:          j.Country,
		Salary:           j.Salary,
		Description:      j.Description,
		Responsibilities: j.Responsibilities,
		Requirements:     j.Requirements,
		Benefits:         j.Benefits,
		Type:             j.Type,
		Experience:       j.Experience,
		Trade:            j.Trade,
		Featured:         j.Featured,
		Date:             j.Date,
	}
}

func applyJobPatch(in ports.JobInput, p ports.JobPatch) ports.JobInput {
	setString(&in.Title, p.Title)
	setString(&in.Company, p.Company)
	setString(&in.Location, p.Location)
	setString(&in.Country, p.Country)
	setString(&in.Salary, p.Salary)
	setString(&in.Description, p.Description)
	setString(&in.Type, p.Type)
	setString(&in.Experience, p.Experience)
	setString(&in.Trade, p.Trade)
	setString(&in.Date, p.Date)
	if p.Responsibilities != nil {
		in.Responsibilities = p.Responsibilities
	}
	if p.Requirements != nil {
		in.Requirements = p.Requirements
	}
	if p.Benefits != nil {
		in.Benefits = p.Benefits
	}
	if p.Featured != nil {
		in.Featured = *p.Featured
	}
	return in
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func trimJobInput(in ports.JobInput) ports.JobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Country = strings.TrimSpace(in.Country)
	in.Salary = strings.TrimSpace(in.Salary)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Trade = strings.TrimSpace(in.Trade)
	in.Date = strings.TrimSpace(in.Date)
	in.Responsibilities = trimList(in.Responsibilities)
	in.Requirements = trimList(in.Requirements)
	in.Benefits = trimList(in.Benefits)
	return in
}

// trimList trims each entry; blank entries stay so validation can reject them.
func trimList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
