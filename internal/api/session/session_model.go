package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotFound = errors.New("requested item not found")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")

// CookieName is the session cookie set on successful login.
const CookieName = "menu_session"

// User mirrors a row of the usuario table. The password hash never leaves
// the backend.
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	UltimoAcceso *time.Time `json:"ultimo_acceso,omitempty"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CheckResponse represents the authentication status body.
type CheckResponse struct {
	Autenticado bool `json:"autenticado"`
}

// Claims is the payload carried inside the signed session cookie.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
