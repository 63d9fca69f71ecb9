// internals/features/attendance/subjects/controller/subject_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/features/attendance/shared"
	sDTO "absensiwajah_backend/internals/features/attendance/subjects/dto"
	sService "absensiwajah_backend/internals/features/attendance/subjects/service"
	helper "absensiwajah_backend/internals/helpers"
)

type SubjectController struct {
	Registry  *sService.Registry
	Validator *validator.Validate
}

func NewSubjectController(reg *sService.Registry, v *validator.Validate) *SubjectController {
	if v == nil {
		v = shared.NewValidator()
	}
	return &SubjectController{Registry: reg, Validator: v}
}

/* ===================== HANDLERS ===================== */

// GET /subjects
func (h *SubjectController) List(c *fiber.Ctx) error {
	list, err := h.Registry.ListDetailed()
	if err != nil {
		log.Printf("[SUBJECTS] list gagal: %v", err)
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Daftar subject", sDTO.NewSubjectResponses(list))
}

// GET /subjects/:name
func (h *SubjectController) Detail(c *fiber.Ctx) error {
	s, err := h.Registry.Get(c.Params("name"))
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail subject", sDTO.NewSubjectResponse(s))
}

// POST /subjects
func (h *SubjectController) Register(c *fiber.Ctx) error {
	var req sDTO.RegisterSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	s, err := h.Registry.Register(req.Name)
	if err != nil {
		log.Printf("[SUBJECTS] register %q gagal: %v", req.Name, err)
		return shared.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Subject terdaftar", sDTO.NewSubjectResponse(s))
}

// DELETE /subjects/:name  atau DELETE /subjects (by body)
func (h *SubjectController) Remove(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		var req sDTO.RemoveSubjectRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
		if err := h.Validator.Struct(req); err != nil {
			return helper.ValidationError(c, err)
		}
		name = req.Name
	}

	if err := h.Registry.Remove(name); err != nil {
		log.Printf("[SUBJECTS] remove %q gagal: %v", name, err)
		return shared.FromDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Subject dihapus", fiber.Map{"name": strings.TrimSpace(name)})
}

// POST /subjects/:name/reset
func (h *SubjectController) Reset(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.Registry.Reset(name); err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Absensi subject di-reset", fiber.Map{"name": strings.TrimSpace(name)})
}

// GET /subjects/:name/sessions
func (h *SubjectController) Sessions(c *fiber.Ctx) error {
	files, err := h.Registry.Sessions(c.Params("name"))
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)
	page, meta := helper.PageOf(sDTO.NewSessionEntryResponses(files), p)
	return helper.JsonList(c, "Daftar sesi", page, meta)
}
