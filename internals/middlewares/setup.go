package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global.
func SetupMiddlewares(app *fiber.App, timezone string) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(timezone))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
