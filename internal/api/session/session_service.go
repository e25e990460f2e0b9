package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var _ Service = (*ServiceImpl)(nil)

// Service issues and validates the signed session tokens carried by the
// cookie. The session is entirely client-held; the only server-side state
// touched here is the usuario table.
type Service interface {
	// Login authenticates the credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, error)

	// Validate parses the token and confirms the referenced user still
	// exists. Returns ErrUnauthenticated for a bad or expired token and
	// ErrNotFound when the user row is gone.
	Validate(ctx context.Context, token string) (*User, error)

	// TokenValid reports whether the token parses and has not expired,
	// without touching the database.
	TokenValid(token string) bool

	// Lifetime is the session (and cookie) duration.
	Lifetime() time.Duration
}

type ServiceImpl struct {
	repo     Repository
	secret   []byte
	lifetime time.Duration
}

func NewService(repo Repository, secret string, lifetime time.Duration) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

func (s *ServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (s *ServiceImpl) Validate(ctx context.Context, token string) (*User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetUserByID(ctx, claims.UserID)
}

func (s *ServiceImpl) TokenValid(token string) bool {
	_, err := s.parse(token)
	return err == nil
}

func (s *ServiceImpl) Lifetime() time.Duration {
	return s.lifetime
}

func (s *ServiceImpl) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}
