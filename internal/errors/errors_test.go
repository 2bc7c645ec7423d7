package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	autherror "github.com/nocturnedev/auth-service/internal/errors"
)

func TestIsUnauthorized(t *testing.T) {
	unauthorized := []error{
		autherror.ErrTooManyLoginAttempts,
		autherror.ErrInvalidCredentials,
		autherror.ErrInvalidRefreshToken,
		autherror.ErrRefreshTokenExpired,
		autherror.ErrTokenRevoked,
		autherror.ErrInvalidOrExpiredToken,
		autherror.ErrUserNotFoundOrInactive,
	}
	for _, err := range unauthorized {
		assert.True(t, autherror.IsUnauthorized(err), "%v should be unauthorized", err)
	}

	// Wrapping must not break the classification.
	assert.True(t, autherror.IsUnauthorized(fmt.Errorf("context: %w", autherror.ErrTokenRevoked)))

	assert.False(t, autherror.IsUnauthorized(nil))
	assert.False(t, autherror.IsUnauthorized(stderrors.New("connection refused")))
	assert.False(t, autherror.IsUnauthorized(autherror.ErrEmailAlreadyInUse))
}

func TestValidationError(t *testing.T) {
	err := autherror.NewValidationError(map[string]string{"email": "is required"})
	assert.Equal(t, "validation failed", err.Error())

	var verr *autherror.ValidationError
	assert.True(t, stderrors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["email"])
}
