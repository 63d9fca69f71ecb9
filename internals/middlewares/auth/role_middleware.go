package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "absensiwajah_backend/internals/helpers"
)

// OnlyRoles validasi role dari token. Tanpa AuthJWT aktif (secret kosong)
// Locals role tidak ada → dilewati.
func OnlyRoles(customForbiddenMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocRole).(string)
		if !ok {
			if c.Locals(LocOperator) == nil {
				return c.Next()
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}
