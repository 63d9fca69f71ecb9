package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	sCtrl "absensiwajah_backend/internals/features/attendance/subjects/controller"
	sService "absensiwajah_backend/internals/features/attendance/subjects/service"
)

// SubjectPublicRoutes → /api/public/subjects
func SubjectPublicRoutes(r fiber.Router, reg *sService.Registry, v *validator.Validate) {
	h := sCtrl.NewSubjectController(reg, v)

	g := r.Group("/subjects")
	g.Get("/", h.List)
	g.Get("/:name", h.Detail)
	g.Get("/:name/sessions", h.Sessions)
}

// SubjectAdminRoutes → /api/a/subjects
func SubjectAdminRoutes(admin fiber.Router, reg *sService.Registry, v *validator.Validate) {
	h := sCtrl.NewSubjectController(reg, v)

	// =========================
	// 📚 SUBJECT (ADMIN AREA)
	// =========================
	g := admin.Group("/subjects")
	g.Post("/", h.Register)
	g.Delete("/", h.Remove)      // by body
	g.Delete("/:name", h.Remove) // by param
	g.Post("/:name/reset", h.Reset)
}
