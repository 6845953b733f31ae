package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
)

// Context keys set by JWTAuth
const (
	PrincipalKey = "principal"
	UserIDKey    = "userID"
	RoleKey      = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	verifier auth.TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := auth.VerifyAccessToken(m.verifier, c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, principal.UserID)
		c.Set(RoleKey, principal.Role)
		c.Next()
	}
}

// RoleRequired middleware to check if the caller has one of the roles.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			HandleAPIError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		HandleAPIError(c, apperrors.NewForbiddenError("you don't have sufficient permissions for this operation"))
		c.Abort()
	}
}

// CurrentPrincipal returns the caller set by JWTAuth, or nil
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	principal, _ := value.(*auth.Principal)
	return principal
}
