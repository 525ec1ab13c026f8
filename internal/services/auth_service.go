package services

import (
	"errors"
	"fmt"

	"github.com/AidanBoudreau/TimeLink/internal/auth"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee ID or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	EmployeeID string
	Password   string
}

// TokenPair carries the issued access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(input LoginInput) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmployeeID(input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrAccountDeactivated
	}

	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefresh
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return "", ErrAccountDeactivated
	}

	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
