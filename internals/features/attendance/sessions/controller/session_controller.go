// internals/features/attendance/sessions/controller/session_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	ssDTO "absensiwajah_backend/internals/features/attendance/sessions/dto"
	ssService "absensiwajah_backend/internals/features/attendance/sessions/service"
	"absensiwajah_backend/internals/features/attendance/shared"
	helper "absensiwajah_backend/internals/helpers"
)

type SessionController struct {
	Writer    *ssService.Writer
	Validator *validator.Validate
}

func NewSessionController(w *ssService.Writer, v *validator.Validate) *SessionController {
	if v == nil {
		v = shared.NewValidator()
	}
	return &SessionController{Writer: w, Validator: v}
}

// POST /sessions/:subject
func (h *SessionController) Save(c *fiber.Ctx) error {
	var req ssDTO.SaveSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	subject := c.Params("subject")
	res, err := h.Writer.Save(c.UserContext(), subject, req.ToDomain())
	if err != nil {
		log.Printf("[SESSIONS] save %q gagal: %v", subject, err)
		return shared.FromDomainError(c, err)
	}

	msg := "Sesi absensi tersimpan"
	if res.SummaryError != "" {
		msg = "Sesi absensi tersimpan, rekap gagal dihitung ulang"
	}
	return helper.JsonCreated(c, msg, ssDTO.NewSaveSessionResponse(res))
}
