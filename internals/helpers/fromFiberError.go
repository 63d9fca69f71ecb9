package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah *fiber.Error jadi response JSON konsisten.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ValidationError ubah validator.ValidationErrors jadi 422 per-field.
// Field name diambil dari tag json (lihat RegisterJSONTagName).
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		msg := fe.Tag()
		if p := strings.TrimSpace(fe.Param()); p != "" {
			msg += "=" + p
		}
		fields[name] = append(fields[name], msg)
	}
	return JsonValidationError(c, fields)
}
