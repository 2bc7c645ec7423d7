package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nocturnedev/auth-service/internal/auth/dto"
	"github.com/nocturnedev/auth-service/internal/auth/service"
	autherror "github.com/nocturnedev/auth-service/internal/errors"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := dto.Validate(&input); err != nil {
		return writeError(c, err)
	}

	captureMeta(c, &input.IPAddress, &input.UserAgent, &input.DeviceInfo)

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := dto.Validate(&input); err != nil {
		return writeError(c, err)
	}

	captureMeta(c, &input.IPAddress, &input.UserAgent, &input.DeviceInfo)

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := dto.Validate(&input); err != nil {
		return writeError(c, err)
	}

	captureMeta(c, &input.IPAddress, &input.UserAgent, &input.DeviceInfo)

	tokens, err := h.authService.Refresh(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := dto.Validate(&input); err != nil {
		return writeError(c, err)
	}

	if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logout successful"})
}

func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return unauthorized(c, "unauthorized")
	}

	if err := h.authService.LogoutAllSessions(c.Context(), user.ID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "all sessions revoked"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return unauthorized(c, "unauthorized")
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func captureMeta(c *fiber.Ctx, ip, userAgent, deviceInfo *string) {
	*ip = c.IP()
	*userAgent = string(c.Request().Header.UserAgent())
	*deviceInfo = c.Get("X-Device-Info")
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

// writeError maps the service error taxonomy to transport status codes.
// Store failures stay generic so internals never leak to the caller.
func writeError(c *fiber.Ctx, err error) error {
	var verr *autherror.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, autherror.ErrEmailAlreadyInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case autherror.IsUnauthorized(err):
		return unauthorized(c, err.Error())
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
