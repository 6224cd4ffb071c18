package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound   = errors.New("user not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrTicketNotFound = errors.New("help ticket not found")

	ErrUserExists = errors.New("user with this email already exists")
	ErrEmailTaken = errors.New("email is already taken")

	ErrSignupClosed      = errors.New("admin signup is disabled when admins already exist")
	ErrInvalidSignupCode = errors.New("invalid signup code")

	ErrMailerDisabled = errors.New("mail delivery is not configured")
	ErrDeliveryFailed = errors.New("failed to send message")
)

// ValidationError is returned for malformed or missing input. It always
// renders as a 400 with Message shown to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Password rules are validation errors so they map to 400 while staying
// comparable with errors.Is.
var (
	ErrInvalidCurrentPassword = &ValidationError{Message: "current password is incorrect"}
	ErrWeakPassword           = &ValidationError{Message: "new password must be at least 6 characters long"}
	ErrSamePassword           = &ValidationError{Message: "new password must be different from current password"}
)

// MinPasswordLength is the shortest password accepted on change or registration.
const MinPasswordLength = 6
