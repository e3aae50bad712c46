package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles analyst authentication
type AuthService struct {
	username  string
	password  string
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("ANALYST_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ANALYST_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		username:  username,
		password:  password,
		jwtSecret: []byte(secret),
	}
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.username || password != s.password {
		return nil, ErrInvalidCredentials
	}

	analystID := "analyst_" + uuid.New().String()[:8]

	claims := &model.AnalystClaims{
		AnalystID: analystID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		AnalystID: analystID,
	}, nil
}

// ValidateToken validates an analyst JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.AnalystClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AnalystClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AnalystClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
