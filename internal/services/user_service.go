package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AidanBoudreau/TimeLink/internal/constants"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrNameRequired       = errors.New("name is required")
	ErrEmployeeIDTaken    = errors.New("employee ID already exists")
	ErrInvalidRole        = errors.New("unknown role")
	ErrPasswordTooShort   = errors.New("password too short")
)

// UserService handles admin user management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput holds the fields for creating a user.
type CreateUserInput struct {
	EmployeeID string
	Name       string
	Email      *string
	Password   string
	Role       models.Role
}

// CreateUser registers a new user with a hashed credential.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		return nil, ErrEmployeeIDRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Role == "" {
		input.Role = models.RoleEmployee
	}
	if !models.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmployeeID(employeeID); err == nil {
		return nil, ErrEmployeeIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee ID: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		EmployeeID:   employeeID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmployeeIDTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUserInput holds the optional fields for amending a user.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *models.Role
	Password *string
	IsActive *bool
}

// UpdateUser amends an existing user.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = input.Email
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeactivateUser soft-disables an account. Users are never hard-deleted so
// their time entries keep a valid owner.
func (s *UserService) DeactivateUser(id uint64) (*models.User, error) {
	inactive := false
	return s.UpdateUser(id, UpdateUserInput{IsActive: &inactive})
}

// ListUsers returns users with pagination.
func (s *UserService) ListUsers(page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// CountByRole returns active user counts keyed by role.
func (s *UserService) CountByRole() (map[models.Role]int64, error) {
	return s.userRepo.CountByRole()
}
