package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	opService "absensiwajah_backend/internals/features/operators/auth/service"
	helper "absensiwajah_backend/internals/helpers"
	"absensiwajah_backend/internals/middlewares/auth"
)

type AuthController struct {
	Auth      *opService.Authenticator
	Validator *validator.Validate
}

func NewAuthController(a *opService.Authenticator, v *validator.Validate) *AuthController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AuthController{Auth: a, Validator: v}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=120"`
	Password string `json:"password" validate:"required,max=200"`
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	tok, err := h.Auth.Login(in.Username, in.Password)
	switch {
	case errors.Is(err, opService.ErrNotConfigured):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Login operator belum dikonfigurasi")
	case errors.Is(err, opService.ErrInvalidCredentials):
		log.Printf("[AUTH] login gagal untuk %q dari %s", in.Username, c.IP())
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau Password salah")
	case err != nil:
		log.Printf("[AUTH] issue token gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tok.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  tok.ExpiresAt,
	})
	return helper.JsonOK(c, "Login berhasil", tok)
}

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Unix(0, 0),
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/a/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	op, _ := c.Locals(auth.LocOperator).(string)
	role, _ := c.Locals(auth.LocRole).(string)
	return helper.JsonOK(c, "Operator aktif", fiber.Map{"operator": op, "role": role})
}
