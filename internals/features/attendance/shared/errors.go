package shared

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/features/attendance/domain"
	helper "absensiwajah_backend/internals/helpers"
)

// DomainStatus memetakan taksonomi error absensi ke HTTP status + error_code.
func DomainStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat), errors.Is(err, domain.ErrInvalidName):
		return fiber.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrHasRecords):
		return fiber.StatusConflict, "HAS_RECORDS"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrNoSessions):
		return fiber.StatusUnprocessableEntity, "NO_SESSIONS"
	case errors.Is(err, domain.ErrNoValidSessions):
		return fiber.StatusUnprocessableEntity, "NO_VALID_SESSIONS"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// FromDomainError kirim error service ke klien. Error storage (500) tidak
// membocorkan path file ke klien; detailnya cukup di log.
func FromDomainError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status, code := DomainStatus(err)
	msg := err.Error()
	if status >= 500 {
		msg = "Terjadi kesalahan penyimpanan"
	}
	return helper.JsonErrorCode(c, status, code, msg)
}
