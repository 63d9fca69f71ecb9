// internals/features/attendance/students/controller/student_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/features/attendance/shared"
	stDTO "absensiwajah_backend/internals/features/attendance/students/dto"
	stService "absensiwajah_backend/internals/features/attendance/students/service"
	helper "absensiwajah_backend/internals/helpers"
)

type StudentController struct {
	Registry  *stService.Registry
	Validator *validator.Validate
}

func NewStudentController(reg *stService.Registry, v *validator.Validate) *StudentController {
	if v == nil {
		v = shared.NewValidator()
	}
	return &StudentController{Registry: reg, Validator: v}
}

/* ===================== PUBLIC ===================== */

// GET /students?q=&subject=&page=&per_page=
func (h *StudentController) List(c *fiber.Ctx) error {
	var q stDTO.ListStudentsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	list, err := h.Registry.Search(c.UserContext(), q.Q, q.Subject)
	if err != nil {
		log.Printf("[STUDENTS] search q=%q subject=%q gagal: %v", q.Q, q.Subject, err)
		return shared.FromDomainError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 200)
	page, meta := helper.PageOf(stDTO.NewStudentResponses(list), p)
	return helper.JsonList(c, "Daftar siswa", page, meta)
}

// GET /students/:id
func (h *StudentController) Detail(c *fiber.Ctx) error {
	st, err := h.Registry.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail siswa", stDTO.NewStudentResponse(st))
}

/* ===================== ADMIN ===================== */

// POST /students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req stDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	st, err := h.Registry.Add(c.UserContext(), req.EnrollmentID, req.Name, req.Subjects)
	if err != nil {
		log.Printf("[STUDENTS] add %q gagal: %v", req.EnrollmentID, err)
		return shared.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Siswa terdaftar", stDTO.NewStudentResponse(st))
}

// PATCH /students/:id/subjects
func (h *StudentController) UpdateSubjects(c *fiber.Ctx) error {
	var req stDTO.UpdateStudentSubjectsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	st, err := h.Registry.UpdateSubjects(c.UserContext(), c.Params("id"), req.Subjects)
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Subject siswa diperbarui", stDTO.NewStudentResponse(st))
}

// DELETE /students/:id
// Id yang tidak ada tetap sukses (removed=false).
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	removed, err := h.Registry.Remove(c.UserContext(), id)
	if err != nil {
		log.Printf("[STUDENTS] remove %q gagal: %v", id, err)
		return shared.FromDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Siswa dihapus", fiber.Map{"enrollment_id": id, "removed": removed})
}

// POST /students/reset
func (h *StudentController) Reset(c *fiber.Ctx) error {
	if err := h.Registry.ResetAll(c.UserContext()); err != nil {
		log.Printf("[STUDENTS] reset gagal: %v", err)
		return shared.FromDomainError(c, err)
	}
	log.Printf("[STUDENTS] master siswa & sampel wajah di-reset")
	return helper.JsonOK(c, "Semua data siswa dihapus", nil)
}
