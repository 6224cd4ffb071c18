package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an account that can sign in to the back-office portal.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the decoded content of a session token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAuthorized reports whether the identity holds requiredRole. There is no
// role hierarchy; a nil identity or an empty role is never authorized.
func IsAuthorized(id *Identity, requiredRole string) bool {
	if id == nil || requiredRole == "" {
		return false
	}
	return id.Role == requiredRole
}

// NormalizeEmail lowercases and trims an address before lookups and writes.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestMeta carries the network details stored with audit records.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
