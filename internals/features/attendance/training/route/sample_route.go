package route

import (
	"github.com/gofiber/fiber/v2"

	trCtrl "absensiwajah_backend/internals/features/attendance/training/controller"
	trService "absensiwajah_backend/internals/features/attendance/training/service"
)

// SamplePublicRoutes → /api/public/students/:id/{samples,thumbnail}
func SamplePublicRoutes(r fiber.Router, store *trService.Store, students trCtrl.StudentGetter) {
	h := trCtrl.NewSampleController(store, students)

	g := r.Group("/students/:id")
	g.Get("/samples", h.List)
	g.Get("/thumbnail", h.Thumbnail)
}

// SampleAdminRoutes → /api/a/students/:id/samples
func SampleAdminRoutes(admin fiber.Router, store *trService.Store, students trCtrl.StudentGetter) {
	h := trCtrl.NewSampleController(store, students)

	admin.Post("/students/:id/samples", h.Upload)
}
