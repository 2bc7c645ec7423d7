package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
	repo "github.com/nocturnedev/auth-service/internal/auth/repository/postgres"
)

var userColumns = []string{
	"id", "email", "first_name", "last_name", "password_hash",
	"role", "is_active", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	now := time.Now()
	user := &domain.User{
		ID: "user-id", Email: "a@x.com", FirstName: "Jane", LastName: "Doe",
		PasswordHash: "hash", Role: "USER", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.FirstName, user.LastName,
			user.PasswordHash, user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, r.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-id", "a@x.com", "Jane", "Doe", "hash", "USER", true, now, now))

		user, err := r.GetByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-id", user.ID)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("ghost@x.com").
			WillReturnRows(pgxmock.NewRows(userColumns))

		user, err := r.GetByEmail(context.Background(), "ghost@x.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("a@x.com").
			WillReturnError(errors.New("connection refused"))

		_, err := r.GetByEmail(context.Background(), "a@x.com")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("user-id").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("user-id", "a@x.com", "Jane", "Doe", "hash", "ADMIN", true, now, now))

	user, err := r.GetByID(context.Background(), "user-id")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ADMIN", user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	user := &domain.User{
		ID: "user-id", Email: "a@x.com", FirstName: "Jane", LastName: "Doe",
		PasswordHash: "hash", Role: "USER", IsActive: false,
	}

	mock.ExpectExec("UPDATE users").
		WithArgs(user.ID, user.Email, user.FirstName, user.LastName,
			user.PasswordHash, user.Role, user.IsActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, r.Update(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "first_name", "last_name", "role", "is_active", "created_at", "updated_at",
		}).
			AddRow("id-1", "a@x.com", "Jane", "Doe", "USER", true, now, now).
			AddRow("id-2", "b@x.com", "John", "Roe", "ADMIN", true, now, now))

	users, err := r.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Empty(t, users[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
