package domain

import "time"

type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is one active session. The token string itself is the
// natural key; there is no surrogate id.
type RefreshToken struct {
	Token      string
	UserID     string
	DeviceInfo string
	IPAddress  string
	UserAgent  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// BlacklistedToken is an explicitly revoked token. It outlives the
// refresh_tokens row so the revocation reason and residual TTL survive
// rotation and logout bookkeeping.
type BlacklistedToken struct {
	ID        string
	Token     string
	UserID    string
	Reason    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// LoginAttempt is an append-only audit record, never updated.
type LoginAttempt struct {
	ID         string
	Email      string
	IPAddress  string
	UserAgent  string
	Success    bool
	FailReason string
	CreatedAt  time.Time
}
