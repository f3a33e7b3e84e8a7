package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/pkg/auth"
)

// Context keys set by TokenAuth
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
)

// TokenResolver resolves session tokens to account IDs
type TokenResolver interface {
	GetUserIDByToken(ctx context.Context, token string) (int64, error)
}

// UserGetter loads accounts for authenticated requests
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TokenAuth authenticates requests with an opaque session token from the
// Authorization header and stores the account ID and role on the context
func TokenAuth(tokens TokenResolver, users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		userID, err := tokens.GetUserIDByToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || !u.IsActive {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, u.RoleType)
		c.Next()
	}
}

// RoleRequired rejects authenticated requests whose account role is not in
// the allowed set. It must run after TokenAuth.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRoleKey)
		if !exists {
			abortUnauthorized(c, "Authentication required")
			return
		}

		role, ok := value.(models.RoleType)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	}
}

// GetUserID reads the authenticated account ID set by TokenAuth
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(401, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message),
	})
}
