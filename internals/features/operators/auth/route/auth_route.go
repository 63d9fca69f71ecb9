package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	opCtrl "absensiwajah_backend/internals/features/operators/auth/controller"
	opService "absensiwajah_backend/internals/features/operators/auth/service"
	rateLimiter "absensiwajah_backend/internals/middlewares"
)

// AuthRoutes → /api/auth
func AuthRoutes(app *fiber.App, a *opService.Authenticator, v *validator.Validate) {
	h := opCtrl.NewAuthController(a, v)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), h.Login)
	baseAuth.Post("/logout", h.Logout)
}

// AuthAdminRoutes → /api/a/me
func AuthAdminRoutes(admin fiber.Router, a *opService.Authenticator, v *validator.Validate) {
	h := opCtrl.NewAuthController(a, v)
	admin.Get("/me", h.Me)
}
