package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
)

const localsUserKey = "auth_user"

// Authenticate verifies the bearer access token and re-fetches the
// user, so stale claims never drive an authorization decision.
func (h *AuthHandler) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "no token provided")
		}

		user, err := h.authService.Authenticate(c.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return writeError(c, err)
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after
// Authenticate.
func (h *AuthHandler) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or
// nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(localsUserKey).(*domain.User)
	return user
}
