package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"absensiwajah_backend/internals/constants"
)

/* ==========================
   OPERATOR AUTH
   Satu akun operator dari ENV (username + bcrypt hash).
========================== */

const (
	RoleOperator      = constants.RoleOperator
	accessTTLDefault  = 12 * time.Hour
	minPasswordLength = 1
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("operator login not configured")
)

type Authenticator struct {
	Username     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
	Now          func() time.Time
}

func NewAuthenticator(username, passwordHash, secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &Authenticator{
		Username:     strings.TrimSpace(username),
		PasswordHash: strings.TrimSpace(passwordHash),
		Secret:       secret,
		TTL:          ttl,
		Now:          time.Now,
	}
}

type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Operator    string    `json:"operator"`
}

func (a *Authenticator) Configured() bool {
	return a.Secret != "" && a.Username != "" && a.PasswordHash != ""
}

// Login cek username + bcrypt lalu terbitkan access token.
func (a *Authenticator) Login(username, password string) (Token, error) {
	if !a.Configured() {
		return Token{}, ErrNotConfigured
	}
	username = strings.TrimSpace(username)
	if username == "" || len(password) < minPasswordLength {
		return Token{}, ErrInvalidCredentials
	}
	// hash tetap dicek walau username salah, supaya waktu respon seragam
	hashErr := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	if !strings.EqualFold(username, a.Username) || hashErr != nil {
		return Token{}, ErrInvalidCredentials
	}
	return a.Issue(a.Username)
}

func (a *Authenticator) Issue(operator string) (Token, error) {
	now := a.Now().UTC()
	exp := now.Add(a.TTL)
	claims := jwt.MapClaims{
		"typ":  "access",
		"sub":  operator,
		"role": RoleOperator,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Secret))
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: exp, Operator: operator}, nil
}

// HashPassword util untuk bikin OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
