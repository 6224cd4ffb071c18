package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens. Tokens are
// stateless; when a denylist is set, logged-out token ids are rejected until
// they expire on their own.
type SessionManager struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.SessionDenylist
	now      func() time.Time
	log      zerolog.Logger
}

// SessionOption customises a SessionManager.
type SessionOption func(*SessionManager)

// WithDenylist enables token revocation on logout.
func WithDenylist(d ports.SessionDenylist) SessionOption {
	return func(m *SessionManager) { m.denylist = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(secret string, ttl time.Duration, log zerolog.Logger, opts ...SessionOption) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	m := &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the lifetime of issued tokens.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a token asserting the user's id, email and role.
func (m *SessionManager) Issue(user *domain.User) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

// Authenticate returns the identity carried by raw, or nil when the token is
// missing, malformed, expired, signed with another key, or revoked.
func (m *SessionManager) Authenticate(ctx context.Context, raw string) *domain.Identity {
	claims, err := m.parse(raw)
	if err != nil {
		return nil
	}

	if m.denylist != nil && claims.ID != "" {
		revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			m.log.Warn().Err(err).Str("jti", claims.ID).Msg("denylist check failed, accepting token")
		} else if revoked {
			return nil
		}
	}

	return &domain.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
}

// Revoke adds the token's id to the denylist until the token expires. It is
// a no-op without a denylist or for tokens that do not verify.
func (m *SessionManager) Revoke(ctx context.Context, raw string) error {
	if m.denylist == nil {
		return nil
	}
	claims, err := m.parse(raw)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return m.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (m *SessionManager) parse(raw string) (*SessionClaims, error) {
	if raw == "" {
		return nil, errors.New("empty token")
	}

	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, m.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if claims.UserID == "" {
		return nil, errors.New("token missing user id")
	}
	return claims, nil
}

func (m *SessionManager) key(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}
