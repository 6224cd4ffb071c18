package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/pkg/metrics"
	"github.com/sunshine-recruitment/portal/internal/pkg/validate"
)

// AuthConfig holds the policy knobs of AuthService.
type AuthConfig struct {
	BcryptCost      int
	AdminSignupCode string
	// Production closes admin sign-up once any admin exists.
	Production bool
}

// AuthService implements login, logout and self-service account operations.
type AuthService struct {
	users    ports.UserRepository
	sessions *SessionManager
	auditor  ports.Auditor
	log      zerolog.Logger
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions *SessionManager, auditor ports.Auditor, log zerolog.Logger, cfg AuthConfig) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		auditor:  auditor,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Login verifies the credentials and issues a session token. Unknown e-mail
// and wrong password produce the same error; only the audit entry records
// which one happened.
func (s *AuthService) Login(ctx context.Context, email, password string, meta domain.RequestMeta) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.AuthAttemptsTotal.WithLabelValues("unknown_user").Inc()
		s.auditor.Record(ctx, audit("", domain.ActionLoginAttempt, domain.ResourceAuthentication,
			fmt.Sprintf("Failed login attempt for email: %s (user not found)", email),
			domain.ActivityFailed, meta))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("bad_password").Inc()
		s.auditor.Record(ctx, audit(user.ID, domain.ActionLoginAttempt, domain.ResourceAuthentication,
			fmt.Sprintf("Failed login attempt for email: %s (invalid password)", email),
			domain.ActivityFailed, meta))
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.sessions.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	s.auditor.Record(ctx, audit(user.ID, domain.ActionLogin, domain.ResourceAuthentication,
		fmt.Sprintf("Successful login for %s (%s)", user.Name, user.Email),
		domain.ActivitySuccess, meta))
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// Logout records the event when the presented token still decodes. The
// client is responsible for discarding the cookie; with a denylist the
// token id is also revoked.
func (s *AuthService) Logout(ctx context.Context, rawToken string, meta domain.RequestMeta) {
	id := s.sessions.Authenticate(ctx, rawToken)
	if err := s.sessions.Revoke(ctx, rawToken); err != nil {
		s.log.Warn().Err(err).Msg("failed to revoke session")
	}
	if id == nil {
		return
	}
	s.auditor.Record(ctx, audit(id.ID, domain.ActionLogout, domain.ResourceAuthentication,
		"User logged out: "+id.Email, domain.ActivitySuccess, meta))
}

// CurrentUser loads the account behind the session.
func (s *AuthService) CurrentUser(ctx context.Context, id *domain.Identity) (*domain.User, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, id.ID)
}

// UpdateProfile rewrites the caller's own profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, id *domain.Identity, upd ports.ProfileUpdate, meta domain.RequestMeta) (*domain.User, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}

	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = domain.NormalizeEmail(upd.Email)
	upd.Phone = strings.TrimSpace(upd.Phone)
	upd.Address = strings.TrimSpace(upd.Address)
	upd.Bio = strings.TrimSpace(upd.Bio)

	if upd.Name == "" || upd.Email == "" {
		return nil, domain.NewValidationError("name and email are required")
	}
	if !validate.Email(upd.Email) {
		return nil, domain.NewValidationError("invalid email format")
	}

	taken, err := s.users.EmailTaken(ctx, upd.Email, id.ID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	current, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateProfile(ctx, id.ID, upd, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if changed := changedProfileFields(current, upd); len(changed) > 0 {
		s.auditor.Record(ctx, audit(id.ID, domain.ActionProfileUpdate, domain.ResourceUserProfile,
			"Updated fields: "+strings.Join(changed, ", "), domain.ActivitySuccess, meta))
	}
	return updated, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, id *domain.Identity, current, next string, meta domain.RequestMeta) error {
	if id == nil {
		return domain.ErrUnauthenticated
	}
	if current == "" || next == "" {
		return domain.NewValidationError("current password and new password are required")
	}
	if len(next) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}
	if current == next {
		return domain.ErrSamePassword
	}

	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id.ID, string(hash), s.now().UTC()); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit(id.ID, domain.ActionPasswordChange, domain.ResourceUserAccount,
		"Password changed successfully", domain.ActivitySuccess, meta))
	return nil
}

// Register creates an account on behalf of an admin.
func (s *AuthService) Register(ctx context.Context, actor *domain.Identity, in ports.RegisterInput, meta domain.RequestMeta) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !domain.IsAuthorized(actor, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit(actor.ID, domain.ActionUserRegistered, domain.ResourceUserAccount,
		fmt.Sprintf("Registered %s (%s) with role %s", user.Name, user.Email, user.Role),
		domain.ActivitySuccess, meta))
	return user, nil
}

// BootstrapAdmin creates an admin account from the public sign-up form. An
// empty configured code disables it; in production it closes once an admin exists.
func (s *AuthService) BootstrapAdmin(ctx context.Context, in ports.AdminSignupInput, meta domain.RequestMeta) (*domain.User, error) {
	if s.cfg.Production {
		exists, err := s.users.ExistsWithRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("admin signup: %w", err)
		}
		if exists {
			return nil, domain.ErrSignupClosed
		}
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	if s.cfg.AdminSignupCode == "" || in.SignupCode != s.cfg.AdminSignupCode {
		return nil, domain.ErrInvalidSignupCode
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit(user.ID, domain.ActionUserRegistered, domain.ResourceUserAccount,
		fmt.Sprintf("Admin signup for %s (%s)", user.Name, user.Email),
		domain.ActivitySuccess, meta))
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

func changedProfileFields(current *domain.User, upd ports.ProfileUpdate) []string {
	var changed []string
	if current.Name != upd.Name {
		changed = append(changed, "name")
	}
	if current.Email != upd.Email {
		changed = append(changed, "email")
	}
	if current.Phone != upd.Phone {
		changed = append(changed, "phone")
	}
	if current.Address != upd.Address {
		changed = append(changed, "address")
	}
	if current.Bio != upd.Bio {
		changed = append(changed, "bio")
	}
	return changed
}
