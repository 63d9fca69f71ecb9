package shared

import (
	"github.com/go-playground/validator/v10"

	"absensiwajah_backend/internals/features/attendance/domain"
	helper "absensiwajah_backend/internals/helpers"
)

// NewValidator validator helper + tag `enrollment` (format ####-####).
func NewValidator() *validator.Validate {
	v := helper.NewValidator()
	_ = v.RegisterValidation("enrollment", func(fl validator.FieldLevel) bool {
		return domain.IsEnrollmentID(fl.Field().String())
	})
	return v
}
