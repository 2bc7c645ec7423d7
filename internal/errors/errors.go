package errors

import (
	"errors"
)

var (
	ErrTooManyLoginAttempts   = errors.New("account locked, retry in 15 minutes")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyInUse      = errors.New("email already registered")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrInvalidOrExpiredToken  = errors.New("invalid or expired token")
	ErrUserNotFoundOrInactive = errors.New("user not found or inactive")
)

// Internal-only login failure reasons. They are persisted in
// login_attempts.fail_reason but never surfaced to the caller, which
// always sees ErrInvalidCredentials.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountInactive = errors.New("account is inactive")
	ErrWrongPassword   = errors.New("wrong password")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsUnauthorized reports whether err belongs to the unauthorized family
// that the boundary maps to a 401.
func IsUnauthorized(err error) bool {
	for _, target := range []error{
		ErrTooManyLoginAttempts,
		ErrInvalidCredentials,
		ErrInvalidRefreshToken,
		ErrRefreshTokenExpired,
		ErrTokenRevoked,
		ErrInvalidOrExpiredToken,
		ErrUserNotFoundOrInactive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
