package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"roomboard/internal/domain/user"
	"roomboard/internal/pkg/cookie"
	"roomboard/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey    = "user_id"
	ctxUserRoleKey  = "user_role"
	ctxPrincipalKey = "principal"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.BearerToken(c)
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, "Access token required")
			return
		}

		p, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			abortAuth(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortAuth(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !slices.Contains(roles, p.Role) {
			abortAuth(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.BearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		if p, err := m.tokenValidator.ValidateToken(token); err == nil {
			SetPrincipal(c, p)
		}
		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p user.Principal) {
	c.Set(ctxPrincipalKey, p)
	c.Set(ctxUserIDKey, p.UserID)
	c.Set(ctxUserRoleKey, p.Role)
	claims := map[string]any{
		"user_id": p.UserID.String(),
		"role":    string(p.Role),
	}
	if p.OrganizationID != nil {
		claims["organization_id"] = p.OrganizationID.String()
	}
	c.Set("jwt_claims", claims)
}

func GetPrincipal(c *gin.Context) (user.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return user.Principal{}, false
	}
	p, ok := v.(user.Principal)
	return p, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

func abortAuth(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": msg}})
}
