package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	stCtrl "absensiwajah_backend/internals/features/attendance/students/controller"
	stService "absensiwajah_backend/internals/features/attendance/students/service"
)

// StudentPublicRoutes → /api/public/students
func StudentPublicRoutes(r fiber.Router, reg *stService.Registry, v *validator.Validate) {
	h := stCtrl.NewStudentController(reg, v)

	g := r.Group("/students")
	g.Get("/", h.List)
	g.Get("/:id", h.Detail)
}

// StudentAdminRoutes → /api/a/students
func StudentAdminRoutes(admin fiber.Router, reg *stService.Registry, v *validator.Validate) {
	h := stCtrl.NewStudentController(reg, v)

	g := admin.Group("/students")
	g.Post("/", h.Create)
	g.Post("/reset", h.Reset) // sebelum /:id
	g.Patch("/:id/subjects", h.UpdateSubjects)
	g.Delete("/:id", h.Delete)
}
