package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AidanBoudreau/TimeLink/internal/dto"
	apierrors "github.com/AidanBoudreau/TimeLink/internal/errors"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/services"
	"github.com/AidanBoudreau/TimeLink/internal/utils"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes admin user management.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AdminDashboard returns active user counts per role.
func (h *UserHandler) AdminDashboard(c *gin.Context) {
	counts, err := h.userService.CountByRole()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_users_by_role": counts,
	})
}

// ListUsers returns all users with pagination.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// CreateUser registers a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		EmployeeID string      `json:"employee_id" binding:"required"`
		Name       string      `json:"name" binding:"required"`
		Email      *string     `json:"email"`
		Password   string      `json:"password" binding:"required"`
		Role       models.Role `json:"role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser amends an existing user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Name     *string      `json:"name"`
		Email    *string      `json:"email"`
		Role     *models.Role `json:"role"`
		Password *string      `json:"password"`
		IsActive *bool        `json:"is_active"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeactivateUser soft-disables an account instead of deleting it, so the
// user's time entries keep a valid owner.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.DeactivateUser(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeIDRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmployeeIDTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
