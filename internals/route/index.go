// file: internals/routes/setup.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiwajah_backend/internals/constants"
	authMiddleware "absensiwajah_backend/internals/middlewares/auth"
	routeDetails "absensiwajah_backend/internals/route/details"
	"absensiwajah_backend/internals/route/deps"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, svc *deps.Services, jwtSecret string) {
	startTime = time.Now()

	BaseRoutes(app, db, svc)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, svc)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (read-only)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → operator JWT
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(jwtSecret),
		authMiddleware.OnlyRoles(constants.RoleErrorOperator("admin absensi"), constants.OperatorOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Attendance routes...")
	routeDetails.AttendancePublicRoutes(public, svc)
	routeDetails.AttendanceAdminRoutes(admin, svc)
	routeDetails.AuthAdminRoutes(admin, svc)
}
