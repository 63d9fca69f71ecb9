package route

import (
	"github.com/gofiber/fiber/v2"

	sumCtrl "absensiwajah_backend/internals/features/attendance/summary/controller"
	sumService "absensiwajah_backend/internals/features/attendance/summary/service"
)

// SummaryPublicRoutes → /api/public/subjects/:name/summary
func SummaryPublicRoutes(r fiber.Router, agg *sumService.Aggregator) {
	h := sumCtrl.NewSummaryController(agg)
	r.Get("/subjects/:name/summary", h.Get)
}

// SummaryAdminRoutes → /api/a/...
func SummaryAdminRoutes(admin fiber.Router, agg *sumService.Aggregator) {
	h := sumCtrl.NewSummaryController(agg)
	admin.Post("/subjects/:name/recompute", h.Recompute)
	admin.Post("/summary/refresh", h.RefreshAll)
}
