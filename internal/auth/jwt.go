package auth

import (
	"errors"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	UserID     uint64      `json:"user_id"`
	EmployeeID string      `json:"employee_id"`
	Role       models.Role `json:"role"`
	TokenType  TokenType   `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the access/refresh token pair.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) GenerateAccessToken(user *models.User) (string, error) {
	return s.generate(user, TokenTypeAccess, s.accessTTL)
}

func (s *TokenService) GenerateRefreshToken(user *models.User) (string, error) {
	return s.generate(user, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) generate(user *models.User, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:     user.ID,
		EmployeeID: user.EmployeeID,
		Role:       user.Role,
		TokenType:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses the token and checks its signature, expiry, and type.
func (s *TokenService) ValidateToken(tokenString string, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
