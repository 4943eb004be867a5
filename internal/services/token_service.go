package services

import (
	"fmt"
	"time"

	"tracku/internal/config"
	"tracku/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenKind selects which signing secret and lifetime a token gets.
type TokenKind string

const (
	// AccessToken is the short-lived credential sent on the
	// Authorization header of every protected request.
	AccessToken TokenKind = "access"
	// RefreshToken is the long-lived credential delivered only via an
	// HTTP-only cookie and used to mint new access tokens.
	RefreshToken TokenKind = "refresh"
)

// Claims are the identity claims embedded in every token.
type Claims struct {
	UserID   string `json:"user_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

// TokenService issues and verifies the two token kinds. Each kind has its
// own secret, so a compromise of one cannot forge the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService from the loaded configuration.
func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessExpiresIn,
		refreshTTL:    cfg.RefreshExpiresIn,
	}
}

func (s *TokenService) keyFor(kind TokenKind) ([]byte, time.Duration) {
	if kind == RefreshToken {
		return s.refreshSecret, s.refreshTTL
	}
	return s.accessSecret, s.accessTTL
}

// Issue signs a token of the given kind carrying the user's identity.
func (s *TokenService) Issue(user *models.User, kind TokenKind) (string, error) {
	secret, ttl := s.keyFor(kind)
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return tokenString, nil
}

// Verify parses a token against the given kind's secret and returns its
// claims. A bad signature, an expired token or a token signed for the
// other kind all fail closed.
func (s *TokenService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret, _ := s.keyFor(kind)
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
