package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// SeedAdmin describes the bootstrap admin account. An empty Email skips it.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

// Seeder fills an empty database with an admin account and sample jobs.
type Seeder struct {
	users ports.UserRepository
	jobs  ports.JobRepository
	log   zerolog.Logger
	cost  int
	now   func() time.Time
}

func NewSeeder(users ports.UserRepository, jobs ports.JobRepository, log zerolog.Logger, bcryptCost int) *Seeder {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{users: users, jobs: jobs, log: log, cost: bcryptCost, now: time.Now}
}

// Run is safe to call on every start; existing data is left untouched.
func (s *Seeder) Run(ctx context.Context, admin SeedAdmin, jobs []*domain.Job) error {
	if err := s.seedAdmin(ctx, admin); err != nil {
		return err
	}
	return s.seedJobs(ctx, jobs)
}

func (s *Seeder) seedAdmin(ctx context.Context, admin SeedAdmin) error {
	email := domain.NormalizeEmail(admin.Email)
	if email == "" {
		return nil
	}
	if len(admin.Password) < domain.MinPasswordLength {
		return fmt.Errorf("seed admin: password must be at least %d characters", domain.MinPasswordLength)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.log.Info().Str("email", email).Msg("admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), s.cost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	name := admin.Name
	if name == "" {
		name = "Admin"
	}
	now := s.now().UTC()
	if _, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.log.Info().Str("email", email).Msg("admin user created")
	return nil
}

func (s *Seeder) seedJobs(ctx context.Context, jobs []*domain.Job) error {
	n, err := s.jobs.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("count", n).Msg("jobs collection not empty, skipping seed")
		return nil
	}

	now := s.now().UTC()
	for _, j := range jobs {
		job := *j
		job.ID = ""
		job.CreatedAt, job.UpdatedAt = now, now
		if _, err := s.jobs.Create(ctx, &job); err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}
	}
	s.log.Info().Int("count", len(jobs)).Msg("sample jobs seeded")
	return nil
}
