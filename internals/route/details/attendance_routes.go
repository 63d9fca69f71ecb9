package details

import (
	"github.com/gofiber/fiber/v2"

	ssRoute "absensiwajah_backend/internals/features/attendance/sessions/route"
	stRoute "absensiwajah_backend/internals/features/attendance/students/route"
	sRoute "absensiwajah_backend/internals/features/attendance/subjects/route"
	sumRoute "absensiwajah_backend/internals/features/attendance/summary/route"
	trRoute "absensiwajah_backend/internals/features/attendance/training/route"
	"absensiwajah_backend/internals/route/deps"
)

func AttendancePublicRoutes(public fiber.Router, svc *deps.Services) {
	sRoute.SubjectPublicRoutes(public, svc.Subjects, svc.Validator)
	sumRoute.SummaryPublicRoutes(public, svc.Aggregator)
	stRoute.StudentPublicRoutes(public, svc.Students, svc.Validator)
	trRoute.SamplePublicRoutes(public, svc.Samples, svc.Students)
}

func AttendanceAdminRoutes(admin fiber.Router, svc *deps.Services) {
	sRoute.SubjectAdminRoutes(admin, svc.Subjects, svc.Validator)
	sumRoute.SummaryAdminRoutes(admin, svc.Aggregator)
	stRoute.StudentAdminRoutes(admin, svc.Students, svc.Validator)
	trRoute.SampleAdminRoutes(admin, svc.Samples, svc.Students)
	ssRoute.SessionAdminRoutes(admin, svc.Writer, svc.Validator)
}
