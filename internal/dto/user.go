package dto

import (
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         uint64      `json:"id"`
	EmployeeID string      `json:"employee_id"`
	Name       string      `json:"name"`
	Email      *string     `json:"email"`
	Role       models.Role `json:"role"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		EmployeeID: user.EmployeeID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
	}
}

// ToUserListResponse converts users to a paginated response
func ToUserListResponse(users []models.User, page, pageSize int, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u)
	}
	return UserListResponse{
		Users:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
