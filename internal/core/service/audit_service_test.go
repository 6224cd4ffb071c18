package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

func TestAuditService_Record_FillsDefaults(t *testing.T) {
	repo := &stubActivityRepo{}
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAuditService(repo, zerolog.Nop(), WithAuditClock(func() time.Time { return fixed }))

	svc.Record(context.Background(), domain.ActivityLog{Action: "Login", Resource: "Authentication", Details: "x"})

	got := repo.last()
	if got == nil {
		t.Fatal("entry not stored")
	}
	if !got.Timestamp.Equal(fixed) || got.Status != domain.ActivitySuccess {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if got.IPAddress != "unknown" || got.UserAgent != "unknown" {
		t.Fatalf("expected unknown network details, got %+v", got)
	}
}

func TestAuditService_Record_SurvivesCancelledContext(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, audit("u1", domain.ActionLogout, domain.ResourceAuthentication, "bye", domain.ActivitySuccess, testMeta))

	if repo.count() != 1 {
		t.Fatalf("expected entry to be written, got %d", repo.count())
	}
}

func TestAuditService_Record_ReportsFailure(t *testing.T) {
	repo := &stubActivityRepo{insertErr: errors.New("mongo down")}
	var reported []domain.ActivityLog
	svc := NewAuditService(repo, zerolog.Nop(), WithAuditReporter(func(err error, e domain.ActivityLog) {
		reported = append(reported, e)
	}))

	svc.Record(context.Background(), audit("", domain.ActionLoginAttempt, domain.ResourceAuthentication, "x", domain.ActivityFailed, testMeta))

	if len(reported) != 1 || reported[0].Action != domain.ActionLoginAttempt {
		t.Fatalf("expected failure to be reported, got %+v", reported)
	}
}

func TestAuditService_Query_Pagination(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		e := audit("u1", domain.ActionLogin, domain.ResourceAuthentication, fmt.Sprintf("entry %d", i), domain.ActivitySuccess, testMeta)
		e.Timestamp = base.Add(time.Duration(i) * time.Minute)
		svc.Record(context.Background(), e)
	}

	page, err := svc.Query(context.Background(), adminIdent, ports.ActivityFilter{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 || len(page.Items) != 5 {
		t.Fatalf("unexpected page: total=%d pages=%d items=%d", page.Total, page.TotalPages, len(page.Items))
	}
	if page.Items[0].Details != "entry 4" {
		t.Fatalf("expected newest-first ordering, got %q first on page 3", page.Items[0].Details)
	}

	first, _ := svc.Query(context.Background(), adminIdent, ports.ActivityFilter{Page: 1, PageSize: 10})
	if first.Items[0].Details != "entry 24" {
		t.Fatalf("expected newest entry first, got %q", first.Items[0].Details)
	}
}

func TestAuditService_Query_ScopesNonAdmins(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	svc.Record(context.Background(), audit(userIdent.ID, domain.ActionLogin, domain.ResourceAuthentication, "mine", domain.ActivitySuccess, testMeta))
	svc.Record(context.Background(), audit("someone-else", domain.ActionLogin, domain.ResourceAuthentication, "theirs", domain.ActivitySuccess, testMeta))

	page, err := svc.Query(context.Background(), userIdent, ports.ActivityFilter{UserID: "someone-else", Status: "all"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.Total != 1 || page.Items[0].Details != "mine" {
		t.Fatalf("non-admin saw foreign entries: %+v", page.Items)
	}
	if repo.lastQuery.Status != "" {
		t.Fatalf("status \"all\" not cleared: %q", repo.lastQuery.Status)
	}

	if _, err := svc.Query(context.Background(), nil, ports.ActivityFilter{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuditService_Submit(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	_, err := svc.Submit(context.Background(), userIdent, ports.ActivityInput{Action: "Export"}, testMeta)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	id, err := svc.Submit(context.Background(), userIdent, ports.ActivityInput{
		Action: "Export", Resource: "Reports", Details: "CSV download", Status: "warning",
	}, testMeta)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	got := repo.last()
	if id == "" || got.UserID != userIdent.ID || got.Status != domain.ActivityWarning {
		t.Fatalf("unexpected stored entry %q: %+v", id, got)
	}
}
