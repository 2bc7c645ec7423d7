package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturnedev/auth-service/internal/auth/dto"
	autherror "github.com/nocturnedev/auth-service/internal/errors"
)

func TestValidate_RegisterInput(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := dto.Validate(&dto.RegisterInput{
			Email:     "jane@x.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Password:  "Passw0rd!",
		})
		assert.NoError(t, err)
	})

	t.Run("missing everything", func(t *testing.T) {
		err := dto.Validate(&dto.RegisterInput{})

		var verr *autherror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "is required", verr.Fields["email"])
		assert.Equal(t, "is required", verr.Fields["first_name"])
		assert.Equal(t, "is required", verr.Fields["last_name"])
		assert.Equal(t, "is required", verr.Fields["password"])
	})

	t.Run("bad email", func(t *testing.T) {
		err := dto.Validate(&dto.RegisterInput{
			Email: "nope", FirstName: "Jane", LastName: "Doe", Password: "Passw0rd!",
		})

		var verr *autherror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	})

	t.Run("short password", func(t *testing.T) {
		err := dto.Validate(&dto.RegisterInput{
			Email: "jane@x.com", FirstName: "Jane", LastName: "Doe", Password: "Ab1",
		})

		var verr *autherror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "must be at least 8 characters long", verr.Fields["password"])
	})

	t.Run("weak password", func(t *testing.T) {
		for _, password := range []string{"alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
			err := dto.Validate(&dto.RegisterInput{
				Email: "jane@x.com", FirstName: "Jane", LastName: "Doe", Password: password,
			})

			var verr *autherror.ValidationError
			require.True(t, errors.As(err, &verr), "password %q should be rejected", password)
			assert.Contains(t, verr.Fields, "password")
		}
	})
}

func TestValidate_LoginInput(t *testing.T) {
	assert.NoError(t, dto.Validate(&dto.LoginInput{Email: "jane@x.com", Password: "anything"}))

	err := dto.Validate(&dto.LoginInput{Email: "jane@x.com"})
	var verr *autherror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")
}

func TestValidate_RefreshInput(t *testing.T) {
	assert.NoError(t, dto.Validate(&dto.RefreshInput{RefreshToken: "token"}))

	err := dto.Validate(&dto.RefreshInput{})
	var verr *autherror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["refresh_token"])
}
