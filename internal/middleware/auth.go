package middleware

import (
	"strings"

	"github.com/AidanBoudreau/TimeLink/internal/auth"
	"github.com/AidanBoudreau/TimeLink/internal/constants"
	"github.com/AidanBoudreau/TimeLink/internal/database"
	apierrors "github.com/AidanBoudreau/TimeLink/internal/errors"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireAuth checks the Authorization bearer token, loads the user, and
// rejects tokens belonging to deactivated accounts.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1], auth.TokenTypeAccess)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Load the user fresh so deactivation takes effect immediately,
		// not only after token expiry.
		var user models.User
		if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}
		if !user.IsActive {
			apierrors.Forbidden(c, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, &user)
		c.Next()
	}
}

// RequireRole allows only users whose role is in the given set.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentUser retrieves the authenticated user loaded by RequireAuth
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
