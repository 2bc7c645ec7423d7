package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
)

type TokenBlacklistRepository struct {
	db DB
}

func NewTokenBlacklistRepository(db DB) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{db: db}
}

func (r *TokenBlacklistRepository) Create(ctx context.Context, bt *domain.BlacklistedToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO token_blacklist (id, token, user_id, reason, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token) DO NOTHING
	`, bt.ID, bt.Token, bt.UserID, bt.Reason, bt.ExpiresAt, bt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (r *TokenBlacklistRepository) GetByToken(ctx context.Context, token string) (*domain.BlacklistedToken, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, token, user_id, reason, expires_at, created_at
		FROM token_blacklist
		WHERE token = $1
		LIMIT 1
	`, token)

	var bt domain.BlacklistedToken
	err := row.Scan(&bt.ID, &bt.Token, &bt.UserID, &bt.Reason, &bt.ExpiresAt, &bt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blacklisted token: %w", err)
	}
	return &bt, nil
}

// IsBlacklisted reports whether token is actively revoked. A record
// whose expiry has passed counts as not blacklisted and is purged on
// the spot.
func (r *TokenBlacklistRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	bt, err := r.GetByToken(ctx, token)
	if err != nil {
		return false, err
	}
	if bt == nil {
		return false, nil
	}

	if bt.ExpiresAt.Before(time.Now()) {
		if _, err := r.db.Exec(ctx, `DELETE FROM token_blacklist WHERE id = $1`, bt.ID); err != nil {
			return false, fmt.Errorf("failed to purge expired blacklist entry: %w", err)
		}
		return false, nil
	}

	return true, nil
}

func (r *TokenBlacklistRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM token_blacklist WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired blacklist entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// BlacklistUserTokens inserts one blacklist row per live refresh token
// of the user, copying each token's own expiry so no entry outlives
// what the original token would have.
func (r *TokenBlacklistRepository) BlacklistUserTokens(ctx context.Context, userID, reason string) error {
	rows, err := r.db.Query(ctx, `
		SELECT token, expires_at FROM refresh_tokens WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to read user refresh tokens: %w", err)
	}
	defer rows.Close()

	type liveToken struct {
		token     string
		expiresAt time.Time
	}
	var tokens []liveToken
	for rows.Next() {
		var lt liveToken
		if err := rows.Scan(&lt.token, &lt.expiresAt); err != nil {
			return fmt.Errorf("failed to scan refresh token: %w", err)
		}
		tokens = append(tokens, lt)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read user refresh tokens: %w", err)
	}

	now := time.Now()
	for _, lt := range tokens {
		_, err := r.db.Exec(ctx, `
			INSERT INTO token_blacklist (id, token, user_id, reason, expires_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (token) DO NOTHING
		`, uuid.NewString(), lt.token, userID, reason, lt.expiresAt, now)
		if err != nil {
			return fmt.Errorf("failed to blacklist user token: %w", err)
		}
	}
	return nil
}
