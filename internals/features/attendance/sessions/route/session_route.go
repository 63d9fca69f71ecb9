package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	ssCtrl "absensiwajah_backend/internals/features/attendance/sessions/controller"
	ssService "absensiwajah_backend/internals/features/attendance/sessions/service"
)

// SessionAdminRoutes → /api/a/sessions
func SessionAdminRoutes(admin fiber.Router, w *ssService.Writer, v *validator.Validate) {
	h := ssCtrl.NewSessionController(w, v)

	g := admin.Group("/sessions")
	g.Post("/:subject", h.Save)
}
