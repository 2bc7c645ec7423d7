package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	api := app.Group("/api/v1")

	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/refresh", h.Refresh)
	api.Post("/logout", h.Logout)

	authed := api.Group("", h.Authenticate())
	authed.Post("/logout-all", h.LogoutAll)
	authed.Get("/me", h.Me)
}
