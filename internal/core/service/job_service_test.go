package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

func newTestJobService() (*JobService, *stubJobRepo, *stubActivityRepo) {
	repo := newStubJobRepo()
	activity := &stubActivityRepo{}
	svc := NewJobService(repo, NewAuditService(activity, zerolog.Nop()), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC) }
	return svc, repo, activity
}

func validJobInput() ports.JobInput {
	return ports.JobInput{
		Title:            "Shuttering Carpenter",
		Company:          "Al Futtaim",
		Location:         "Dubai",
		Country:          "UAE",
		Salary:           "AED 2,000 - 2,500",
		Description:      "Formwork carpentry for high-rise projects.",
		Responsibilities: []string{"Build formwork"},
		Requirements:     []string{"3 years experience"},
		Benefits:         []string{"Accommodation"},
		Type:             "Full-time",
		Experience:       "3+ years",
		Trade:            "Carpentry",
	}
}

func TestJobService_CreateThenGet(t *testing.T) {
	svc, _, activity := newTestJobService()
	ctx := context.Background()

	in := validJobInput()
	in.Featured = true
	created, err := svc.Create(ctx, adminIdent, in, testMeta)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("server fields not assigned: %+v", created)
	}
	if created.Date != "2025-06-15" {
		t.Fatalf("expected default date, got %q", created.Date)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != in.Title || got.Company != in.Company || got.Location != in.Location ||
		got.Country != in.Country || got.Salary != in.Salary || got.Description != in.Description ||
		got.Type != in.Type || got.Experience != in.Experience || got.Trade != in.Trade || !got.Featured {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Responsibilities, in.Responsibilities) ||
		!reflect.DeepEqual(got.Requirements, in.Requirements) ||
		!reflect.DeepEqual(got.Benefits, in.Benefits) {
		t.Fatalf("list fields mismatch: %+v", got)
	}

	entry := activity.last()
	if entry.Action != domain.ActionJobCreated || entry.UserID != adminIdent.ID {
		t.Fatalf("unexpected audit: %+v", entry)
	}
	if entry.Details != "Created job: Shuttering Carpenter at Al Futtaim (Dubai)" {
		t.Fatalf("unexpected details: %q", entry.Details)
	}
}

func TestJobService_Create_Validation(t *testing.T) {
	svc, repo, activity := newTestJobService()

	tests := []struct {
		name   string
		mutate func(*ports.JobInput)
		want   string
	}{
		{"short title", func(in *ports.JobInput) { in.Title = "A" }, "title"},
		{"short description", func(in *ports.JobInput) { in.Description = "too short" }, "description"},
		{"empty responsibilities", func(in *ports.JobInput) { in.Responsibilities = nil }, "responsibilities"},
		{"blank benefit", func(in *ports.JobInput) { in.Benefits = []string{"  "} }, "benefits"},
		{"bad date", func(in *ports.JobInput) { in.Date = "15/06/2025" }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validJobInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), adminIdent, in, testMeta)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(ve.Message, tt.want) {
				t.Fatalf("expected message about %s, got %q", tt.want, ve.Message)
			}
		})
	}
	if len(repo.jobs) != 0 || activity.count() != 0 {
		t.Fatalf("rejected input caused writes: jobs=%d audit=%d", len(repo.jobs), activity.count())
	}
}

func TestJobService_Mutations_RequireAdmin(t *testing.T) {
	svc, repo, activity := newTestJobService()
	ctx := context.Background()
	existing, _ := repo.Create(ctx, &domain.Job{Title: "Mason"})

	tests := []struct {
		name  string
		actor *domain.Identity
		want  error
	}{
		{"unauthenticated", nil, domain.ErrUnauthenticated},
		{"non-admin", userIdent, domain.ErrForbidden},
		{"empty role", &domain.Identity{ID: "x"}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.actor, validJobInput(), testMeta); !errors.Is(err, tt.want) {
				t.Fatalf("create: expected %v, got %v", tt.want, err)
			}
			title := "Changed"
			if _, err := svc.Update(ctx, tt.actor, existing.ID, ports.JobPatch{Title: &title}, testMeta); !errors.Is(err, tt.want) {
				t.Fatalf("update: expected %v, got %v", tt.want, err)
			}
			if err := svc.Delete(ctx, tt.actor, existing.ID, testMeta); !errors.Is(err, tt.want) {
				t.Fatalf("delete: expected %v, got %v", tt.want, err)
			}
		})
	}

	if len(repo.jobs) != 1 || repo.jobs[existing.ID].Title != "Mason" {
		t.Fatalf("job collection changed: %+v", repo.jobs)
	}
	if activity.count() != 0 {
		t.Fatalf("expected no audit entries, got %d", activity.count())
	}
}

func TestJobService_Update_MergesPatch(t *testing.T) {
	svc, _, activity := newTestJobService()
	ctx := context.Background()
	created, err := svc.Create(ctx, adminIdent, validJobInput(), testMeta)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Senior Shuttering Carpenter"
	featured := true
	updated, err := svc.Update(ctx, adminIdent, created.ID, ports.JobPatch{
		Title:    &title,
		Featured: &featured,
		Benefits: []string{"Accommodation", "Transport"},
	}, testMeta)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || !updated.Featured || len(updated.Benefits) != 2 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Company != "Al Futtaim" || updated.Description != created.Description {
		t.Fatalf("omitted fields not retained: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt changed")
	}

	entry := activity.last()
	if entry.Action != domain.ActionJobUpdated ||
		!strings.Contains(entry.Details, "Shuttering Carpenter at Al Futtaim -> Senior Shuttering Carpenter at Al Futtaim") ||
		!strings.Contains(entry.Details, created.ID) {
		t.Fatalf("unexpected audit: %+v", entry)
	}

	empty := []string{}
	if _, err := svc.Update(ctx, adminIdent, created.ID, ports.JobPatch{Requirements: empty}, testMeta); err == nil {
		t.Fatal("expected emptying requirements to fail validation")
	}
	if _, err := svc.Update(ctx, adminIdent, "missing", ports.JobPatch{Title: &title}, testMeta); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobService_Delete_Twice(t *testing.T) {
	svc, _, activity := newTestJobService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, adminIdent, validJobInput(), testMeta)
	before := activity.count()

	if err := svc.Delete(ctx, adminIdent, created.ID, testMeta); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if activity.count() != before+1 || activity.last().Action != domain.ActionJobDeleted {
		t.Fatalf("expected one delete audit, got %+v", activity.last())
	}

	if err := svc.Delete(ctx, adminIdent, created.ID, testMeta); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("second delete: expected ErrJobNotFound, got %v", err)
	}
	if activity.count() != before+1 {
		t.Fatalf("second delete wrote an audit entry")
	}
}

func TestJobService_List_Filters(t *testing.T) {
	svc, repo, _ := newTestJobService()
	ctx := context.Background()
	repo.Create(ctx, &domain.Job{Title: "Steel Fixer", Trade: "Civil", Country: "UAE", Date: "2025-01-01"})
	repo.Create(ctx, &domain.Job{Title: "Electrician", Trade: "Electrical", Country: "Qatar", Date: "2025-02-01", Featured: true})

	civil, err := svc.List(ctx, ports.JobFilter{Trade: "Civil"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(civil) != 1 || civil[0].Title != "Steel Fixer" {
		t.Fatalf("trade filter: %+v", civil)
	}

	all, _ := svc.List(ctx, ports.JobFilter{Trade: domain.AllTrades, Country: domain.AllCountries})
	if len(all) != 2 {
		t.Fatalf("sentinel filters should return everything, got %d", len(all))
	}
	if all[0].Title != "Electrician" {
		t.Fatalf("expected newest first, got %s", all[0].Title)
	}

	featured, _ := svc.List(ctx, ports.JobFilter{FeaturedOnly: true})
	if len(featured) != 1 || !featured[0].Featured {
		t.Fatalf("featured filter: %+v", featured)
	}
}
