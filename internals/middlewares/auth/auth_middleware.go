// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "absensiwajah_backend/internals/helpers"
)

// Locals yang diisi AuthJWT.
const (
	LocOperator = "operator"
	LocRole     = "userRole"
)

// AuthJWT verifikasi access token operator (HS256).
// secret kosong → middleware dilewati (mode dev, dicatat sekali saat start).
func AuthJWT(secret string) fiber.Handler {
	if secret == "" {
		log.Println("[WARN] [AUTH] JWT_SECRET kosong, route admin tidak dilindungi")
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		tok, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || tok == nil {
			log.Println("[ERROR] [AUTH] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] [AUTH] Exp validation:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}
		if typ, _ := claims["typ"].(string); typ != "" && typ != "access" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Wrong token type")
		}

		storeBasicClaimsToLocals(c, claims)
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}
