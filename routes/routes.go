// Package routes mounts the controllers on the fiber app
package routes

import (
	"github.com/VinukaThejana/blog/controllers"
	"github.com/VinukaThejana/blog/middleware"
	"github.com/gofiber/fiber/v2"
)

// Auth mounts the auth routes
func Auth(app *fiber.App, c *controllers.Auth, m *middleware.Auth) {
	app.Route("/auth", func(router fiber.Router) {
		router.Post("/register", c.Register)
		router.Post("/login", c.Login)
		router.Post("/update-password", m.Check, c.UpdatePassword)
		router.Post("/verify-otp", m.Optional, c.VerifyOTP)
		router.Post("/reset-password-link", c.ResetPasswordLink)
		router.Post("/reset-password/:id/:token", c.ResetPassword)
		router.Get("/profile", m.Check, c.Profile)
	})
}

// System mounts the system routes
func System(app *fiber.App, c *controllers.System) {
	app.Route("/system", func(router fiber.Router) {
		router.Get("/health", c.Health)
	})
}
