package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func newTestAuth(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := HashPassword("rahasia")
	if err != nil {
		t.Fatal(err)
	}
	return NewAuthenticator("admin", hash, "test-secret", time.Hour)
}

func TestLogin_IssuesSignedToken(t *testing.T) {
	a := newTestAuth(t)
	tok, err := a.Login(" Admin ", "rahasia")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.Operator != "admin" || tok.TokenType != "Bearer" {
		t.Errorf("unexpected token meta: %+v", tok)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token not valid: %v", err)
	}
	if claims["role"] != RoleOperator || claims["sub"] != "admin" || claims["typ"] != "access" {
		t.Errorf("claims = %v", claims)
	}
}

func TestLogin_Rejects(t *testing.T) {
	a := newTestAuth(t)
	cases := []struct{ user, pass string }{
		{"admin", "salah"},
		{"other", "rahasia"},
		{"", "rahasia"},
		{"admin", ""},
	}
	for _, tc := range cases {
		if _, err := a.Login(tc.user, tc.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q,%q): expected ErrInvalidCredentials, got %v", tc.user, tc.pass, err)
		}
	}

	unconfigured := NewAuthenticator("admin", "", "secret", 0)
	if _, err := unconfigured.Login("admin", "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
