package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
)

type LoginAttemptRepository struct {
	db DB
}

func NewLoginAttemptRepository(db DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

func (r *LoginAttemptRepository) Create(ctx context.Context, attempt *domain.LoginAttempt) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_attempts (id, email, ip_address, user_agent, success, fail_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, attempt.ID, attempt.Email, attempt.IPAddress, attempt.UserAgent,
		attempt.Success, attempt.FailReason, attempt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) CountRecentFailedByEmail(ctx context.Context, email string, window time.Duration) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE email = $1 AND success = FALSE AND created_at >= $2
	`, email, time.Now().Add(-window)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count failed login attempts: %w", err)
	}
	return count, nil
}

func (r *LoginAttemptRepository) CountRecentByIP(ctx context.Context, ipAddress string, window time.Duration) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE ip_address = $1 AND created_at >= $2
	`, ipAddress, time.Now().Add(-window)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count login attempts by ip: %w", err)
	}
	return count, nil
}

func (r *LoginAttemptRepository) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM login_attempts WHERE created_at < $1
	`, time.Now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old login attempts: %w", err)
	}
	return tag.RowsAffected(), nil
}
