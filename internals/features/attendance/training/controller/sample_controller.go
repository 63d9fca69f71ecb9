// internals/features/attendance/training/controller/sample_controller.go
package controller

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/constants"
	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/shared"
	trService "absensiwajah_backend/internals/features/attendance/training/service"
	helper "absensiwajah_backend/internals/helpers"
)

// StudentGetter dipenuhi student registry (nama dipakai di nama file sampel).
type StudentGetter interface {
	Get(ctx context.Context, id string) (domain.Student, error)
}

type SampleController struct {
	Store    *trService.Store
	Students StudentGetter
}

func NewSampleController(store *trService.Store, students StudentGetter) *SampleController {
	return &SampleController{Store: store, Students: students}
}

// uploadedFiles ambil file dari field "images" (multi), fallback "image"/"file".
func uploadedFiles(c *fiber.Ctx) []*multipart.FileHeader {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if fs := form.File["images"]; len(fs) > 0 {
			return fs
		}
	}
	for _, n := range []string{"image", "file"} {
		if fh, err := c.FormFile(n); err == nil && fh != nil && fh.Size > 0 {
			return []*multipart.FileHeader{fh}
		}
	}
	return nil
}

// POST /students/:id/samples (multipart)
func (h *SampleController) Upload(c *fiber.Ctx) error {
	st, err := h.Students.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return shared.FromDomainError(c, err)
	}

	files := uploadedFiles(c)
	if len(files) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File gambar wajib diisi (field: images/image/file)")
	}

	saved := make([]trService.Sample, 0, len(files))
	for _, fh := range files {
		if !constants.IsImageUpload(fh.Filename) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format file harus jpg/jpeg/png/webp: "+fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file upload")
		}
		sm, err := h.Store.SaveSample(st.EnrollmentID, st.Name, f)
		_ = f.Close()
		if err != nil {
			log.Printf("[TRAINING] upload %s (%s) gagal: %v", st.EnrollmentID, fh.Filename, err)
			return shared.FromDomainError(c, err)
		}
		saved = append(saved, sm)
	}
	return helper.JsonCreated(c, "Sampel wajah tersimpan", fiber.Map{
		"enrollment_id": st.EnrollmentID,
		"samples":       saved,
	})
}

// GET /students/:id/samples
func (h *SampleController) List(c *fiber.Ctx) error {
	list, err := h.Store.Samples(c.Params("id"))
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Daftar sampel wajah", list)
}

// GET /students/:id/thumbnail?size=96 → image/webp
func (h *SampleController) Thumbnail(c *fiber.Ctx) error {
	img, err := h.Store.Thumbnail(c.Params("id"), c.QueryInt("size", 96))
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/webp")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(img)
}
