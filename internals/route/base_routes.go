package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "absensiwajah_backend/internals/databases"
	"absensiwajah_backend/internals/route/deps"
)

func BaseRoutes(app *fiber.App, db *gorm.DB, svc *deps.Services) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Absensi wajah backend running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		dbStatus := "Not used"
		if db != nil {
			dbStatus = "Connected"
			if err := database.Ping(db); err != nil {
				dbStatus = "Database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		storageStatus := "OK"
		if _, err := svc.Subjects.List(); err != nil {
			storageStatus = "Storage error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"storage":        storageStatus,
			"archive":        svc.OSS != nil,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
