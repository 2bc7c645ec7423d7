package handler_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nocturnedev/auth-service/config"
	"github.com/nocturnedev/auth-service/internal/auth/domain"
	"github.com/nocturnedev/auth-service/internal/auth/handler"
	"github.com/nocturnedev/auth-service/internal/auth/service"
	"github.com/nocturnedev/auth-service/internal/mocks"
	"github.com/nocturnedev/auth-service/pkg/constant"
)

func TestRequireRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	tokens := mocks.NewMockRefreshTokenRepository(ctrl)
	blacklist := mocks.NewMockTokenBlacklistRepository(ctrl)
	attempts := mocks.NewMockLoginAttemptRepository(ctrl)

	tokenService := service.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	authService := service.NewAuthService(users, tokens, blacklist, attempts,
		tokenService, service.NewBcryptHasher(bcrypt.MinCost), &config.Config{
			MaxActiveSessions:     5,
			LoginMaxAttempts:      5,
			LoginAttemptWindowMin: 15,
		})
	h := handler.NewAuthHandler(authService)

	app := fiber.New()
	app.Get("/admin-only", h.Authenticate(), h.RequireRole(constant.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	probe := func(role string) int {
		access, _, _, err := tokenService.Generate("user-id", "jane@x.com", role)
		require.NoError(t, err)

		// The role that matters is the one fetched from the store,
		// which here mirrors the claim.
		users.EXPECT().GetByID(gomock.Any(), "user-id").
			Return(&domain.User{ID: "user-id", Role: role, IsActive: true}, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/admin-only", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+access)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusForbidden, probe(constant.RoleUser))
	assert.Equal(t, fiber.StatusOK, probe(constant.RoleAdmin))
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenService := service.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	authService := service.NewAuthService(
		mocks.NewMockUserRepository(ctrl),
		mocks.NewMockRefreshTokenRepository(ctrl),
		mocks.NewMockTokenBlacklistRepository(ctrl),
		mocks.NewMockLoginAttemptRepository(ctrl),
		tokenService, service.NewBcryptHasher(bcrypt.MinCost), &config.Config{
			MaxActiveSessions:     5,
			LoginMaxAttempts:      5,
			LoginAttemptWindowMin: 15,
		})
	h := handler.NewAuthHandler(authService)

	app := fiber.New()
	app.Get("/protected", h.Authenticate(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for _, header := range []string{"", "Basic abc", "Bearer", "bearer token"} {
		req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}
