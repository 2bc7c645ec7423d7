package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_repositories.go -package=mocks github.com/nocturnedev/auth-service/internal/auth/domain UserRepository,RefreshTokenRepository,TokenBlacklistRepository,LoginAttemptRepository

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]User, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, rt *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByToken reports whether a row was actually deleted so the
	// rotation path can detect a concurrent consumer.
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	DeleteOldestByUserID(ctx context.Context, userID string) error
}

type TokenBlacklistRepository interface {
	Create(ctx context.Context, bt *BlacklistedToken) error
	GetByToken(ctx context.Context, token string) (*BlacklistedToken, error)
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
	BlacklistUserTokens(ctx context.Context, userID, reason string) error
}

type LoginAttemptRepository interface {
	Create(ctx context.Context, attempt *LoginAttempt) error
	CountRecentFailedByEmail(ctx context.Context, email string, window time.Duration) (int, error)
	CountRecentByIP(ctx context.Context, ipAddress string, window time.Duration) (int, error)
	DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}
