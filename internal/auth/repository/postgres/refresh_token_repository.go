package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
)

type RefreshTokenRepository struct {
	db DB
}

func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, rt *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, device_info, ip_address, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rt.Token, rt.UserID, rt.DeviceInfo, rt.IPAddress, rt.UserAgent, rt.ExpiresAt, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `
		SELECT token, user_id, device_info, ip_address, user_agent, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
		LIMIT 1
	`, token)

	var rt domain.RefreshToken
	err := row.Scan(&rt.Token, &rt.UserID, &rt.DeviceInfo, &rt.IPAddress,
		&rt.UserAgent, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &rt, nil
}

// DeleteByToken removes the row and reports whether it existed. The
// rotation path uses the report to reject a concurrent caller that
// presents an already-consumed token.
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user refresh tokens: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *RefreshTokenRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM refresh_tokens WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count refresh tokens: %w", err)
	}
	return count, nil
}

// DeleteOldestByUserID evicts the single earliest session by
// created_at. The subquery keeps the delete atomic so a racing insert
// never causes the wrong row to go.
func (r *RefreshTokenRepository) DeleteOldestByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE token = (
			SELECT token FROM refresh_tokens
			WHERE user_id = $1
			ORDER BY created_at ASC
			LIMIT 1
		)
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete oldest refresh token: %w", err)
	}
	return nil
}
