package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/features/attendance/domain"
)

func TestDomainStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
		tag  string
	}{
		{fmt.Errorf("%w: x", domain.ErrInvalidName), fiber.StatusBadRequest, "BAD_REQUEST"},
		{fmt.Errorf("%w: x", domain.ErrHasRecords), fiber.StatusConflict, "HAS_RECORDS"},
		{fmt.Errorf("%w: x", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: x", domain.ErrNoValidSessions), fiber.StatusUnprocessableEntity, "NO_VALID_SESSIONS"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		code, tag := DomainStatus(tc.err)
		if code != tc.code || tag != tc.tag {
			t.Errorf("DomainStatus(%v) = %d %s, want %d %s", tc.err, code, tag, tc.code, tc.tag)
		}
	}
}

func TestNewValidator_Enrollment(t *testing.T) {
	type req struct {
		ID string `json:"enrollment_id" validate:"required,enrollment"`
	}
	v := NewValidator()
	if err := v.Struct(req{ID: "0001-0001"}); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if err := v.Struct(req{ID: "1-1"}); err == nil {
		t.Error("malformed id accepted")
	}
}
