package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nocturnedev/auth-service/internal/auth/service"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := service.NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hashed)

	assert.True(t, h.Compare("Passw0rd!", hashed))
	assert.False(t, h.Compare("passw0rd!", hashed))
	assert.False(t, h.Compare("", hashed))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := service.NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	second, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default rather than
	// failing at hash time.
	h := service.NewBcryptHasher(99)

	hashed, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
