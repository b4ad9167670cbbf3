package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"social_threads/internal/apperror"
	"social_threads/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL matches the session cookie lifetime.
const DefaultTokenTTL = 15 * 24 * time.Hour

// AuthConfig carries token signing settings from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService issues and verifies session tokens.
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	return &AuthService{users: users, cfg: cfg}
}

var _ Authorization = (*AuthService)(nil)

// Claims defines the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// IssueToken mints a signed HS256 token bound to userID.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}

// Authenticate verifies the token signature and expiry, then checks the
// referenced user still exists. Returns the caller's user id.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return "", apperror.Unauthenticated("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", apperror.Unauthenticated("invalid or expired token")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if u == nil {
		return "", apperror.NotFound("user")
	}
	return claims.UserID, nil
}

// TokenTTL reports the configured session lifetime.
func (s *AuthService) TokenTTL() time.Duration { return s.cfg.TokenTTL }

// hashPassword produces a salted bcrypt digest; different calls with the same
// password yield different digests.
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword returns a non-nil error on mismatch.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
