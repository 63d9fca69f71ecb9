package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "absensiwajah_backend/internals/features/operators/auth/route"
	"absensiwajah_backend/internals/route/deps"
)

func AuthRoutes(app *fiber.App, svc *deps.Services) {
	authRoute.AuthRoutes(app, svc.Auth, svc.Validator)
}

func AuthAdminRoutes(admin fiber.Router, svc *deps.Services) {
	authRoute.AuthAdminRoutes(admin, svc.Auth, svc.Validator)
}
