package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.seq)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsWithRole(_ context.Context, role string) (bool, error) {
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate, at time.Time) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name, u.Email, u.Phone, u.Address, u.Bio = upd.Name, upd.Email, upd.Phone, upd.Address, upd.Bio
	u.UpdatedAt = at
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = at
	return nil
}

type stubActivityRepo struct {
	mu        sync.Mutex
	entries   []*domain.ActivityLog
	insertErr error
	lastQuery ports.ActivityFilter
}

func (r *stubActivityRepo) Insert(_ context.Context, entry *domain.ActivityLog) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return "", r.insertErr
	}
	c := *entry
	c.ID = fmt.Sprintf("a%d", len(r.entries)+1)
	r.entries = append(r.entries, &c)
	return c.ID, nil
}

// Query applies the same filters the real Mongo repo would use.
func (r *stubActivityRepo) Query(_ context.Context, f ports.ActivityFilter) ([]*domain.ActivityLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = f

	var matched []*domain.ActivityLog
	for _, e := range r.entries {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(e.Status) != f.Status {
			continue
		}
		if f.Action != "" && !strings.Contains(strings.ToLower(e.Action), strings.ToLower(f.Action)) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })

	total := int64(len(matched))
	start := (f.Page - 1) * f.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// last returns the most recently recorded entry.
func (r *stubActivityRepo) last() *domain.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

func (r *stubActivityRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type stubJobRepo struct {
	jobs map[string]*domain.Job
	seq  int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.Responsibilities = append([]string(nil), j.Responsibilities...)
	c.Requirements = append([]string(nil), j.Requirements...)
	c.Benefits = append([]string(nil), j.Benefits...)
	return &c
}

func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.jobs {
		if f.Trade != "" && j.Trade != f.Trade {
			continue
		}
		if f.Country != "" && j.Country != f.Country {
			continue
		}
		if f.FeaturedOnly && !j.Featured {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(j.Title), q) &&
				!strings.Contains(strings.ToLower(j.Company), q) &&
				!strings.Contains(strings.ToLower(j.Location), q) {
				continue
			}
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Date > out[k].Date })
	return out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.seq++
	c := cloneJob(job)
	c.ID = fmt.Sprintf("j%d", r.seq)
	r.jobs[c.ID] = c
	return cloneJob(c), nil
}

func (r *stubJobRepo) Replace(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if _, ok := r.jobs[job.ID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	r.jobs[job.ID] = cloneJob(job)
	return cloneJob(job), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) Count(context.Context) (int64, error) {
	return int64(len(r.jobs)), nil
}

type stubTicketRepo struct {
	tickets map[string]*domain.HelpTicket
	seq     int
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[string]*domain.HelpTicket)}
}

func (r *stubTicketRepo) Create(_ context.Context, t *domain.HelpTicket) (*domain.HelpTicket, error) {
	r.seq++
	c := *t
	c.ID = fmt.Sprintf("t%d", r.seq)
	r.tickets[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, id string) (*domain.HelpTicket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTicketRepo) List(_ context.Context, f ports.TicketFilter) ([]*domain.HelpTicket, int64, error) {
	var out []*domain.HelpTicket
	for _, t := range r.tickets {
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

type stubStoryRepo struct {
	stories   []*domain.SuccessStory
	createErr error
}

func (r *stubStoryRepo) Create(_ context.Context, s *domain.SuccessStory) (*domain.SuccessStory, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	c := *s
	c.ID = fmt.Sprintf("s%d", len(r.stories)+1)
	r.stories = append(r.stories, &c)
	out := c
	return &out, nil
}

func (r *stubStoryRepo) List(_ context.Context, limit int) ([]*domain.SuccessStory, error) {
	out := make([]*domain.SuccessStory, 0, len(r.stories))
	for i := len(r.stories) - 1; i >= 0; i-- {
		out = append(out, r.stories[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubImageStore struct {
	saved   map[string][]byte
	removed []string
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{saved: make(map[string][]byte)}
}

func (s *stubImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := "/uploads/" + filename
	s.saved[path] = b
	return path, nil
}

func (s *stubImageStore) Remove(_ context.Context, path string) error {
	if _, ok := s.saved[path]; !ok {
		return errors.New("no such file")
	}
	delete(s.saved, path)
	s.removed = append(s.removed, path)
	return nil
}

type stubNotifier struct {
	err          error
	tickets      []*domain.HelpTicket
	contacts     []domain.ContactMessage
	applications []domain.JobApplication
}

func (n *stubNotifier) NotifyHelpTicket(_ context.Context, t *domain.HelpTicket) error {
	if n.err != nil {
		return n.err
	}
	n.tickets = append(n.tickets, t)
	return nil
}

func (n *stubNotifier) SendContactMessage(_ context.Context, m domain.ContactMessage) error {
	if n.err != nil {
		return n.err
	}
	n.contacts = append(n.contacts, m)
	return nil
}

func (n *stubNotifier) SendJobApplication(_ context.Context, a domain.JobApplication) error {
	if n.err != nil {
		return n.err
	}
	n.applications = append(n.applications, a)
	return nil
}

var (
	adminIdent = &domain.Identity{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
	userIdent  = &domain.Identity{ID: "user-1", Email: "user@example.com", Role: domain.RoleUser}
	testMeta   = domain.RequestMeta{IPAddress: "203.0.113.7", UserAgent: "go-test"}
)
