package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
	repo "github.com/nocturnedev/auth-service/internal/auth/repository/postgres"
)

var refreshTokenColumns = []string{
	"token", "user_id", "device_info", "ip_address", "user_agent", "expires_at", "created_at",
}

func TestRefreshTokenRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	now := time.Now()
	rt := &domain.RefreshToken{
		Token: "refresh-token", UserID: "user-id", DeviceInfo: "laptop",
		IPAddress: "10.0.0.1", UserAgent: "test-agent",
		ExpiresAt: now.Add(7 * 24 * time.Hour), CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(rt.Token, rt.UserID, rt.DeviceInfo, rt.IPAddress, rt.UserAgent, rt.ExpiresAt, rt.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, r.Create(context.Background(), rt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM refresh_tokens").
			WithArgs("refresh-token").
			WillReturnRows(pgxmock.NewRows(refreshTokenColumns).
				AddRow("refresh-token", "user-id", "laptop", "10.0.0.1", "test-agent", now.Add(time.Hour), now))

		rt, err := r.GetByToken(context.Background(), "refresh-token")
		require.NoError(t, err)
		require.NotNil(t, rt)
		assert.Equal(t, "user-id", rt.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM refresh_tokens").
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows(refreshTokenColumns))

		rt, err := r.GetByToken(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, rt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteByToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	t.Run("row existed", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM refresh_tokens").
			WithArgs("refresh-token").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		deleted, err := r.DeleteByToken(context.Background(), "refresh-token")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("already consumed", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM refresh_tokens").
			WithArgs("refresh-token").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		deleted, err := r.DeleteByToken(context.Background(), "refresh-token")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("user-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	assert.NoError(t, r.DeleteByUserID(context.Background(), "user-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := r.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_CountByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-id").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

	count, err := r.CountByUserID(context.Background(), "user-id")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteOldestByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("user-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, r.DeleteOldestByUserID(context.Background(), "user-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
