package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/savageut/scheduler-backend/internal/auth/domain"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxUserRole = "user_role"
)

// UserID extracts the authenticated user's id from the Gin context.
// This is set by JWTAuthMiddleware.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

// Username extracts the authenticated user's username from the Gin context.
func Username(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUsername))
}

// Role extracts the authenticated user's role from the Gin context.
func Role(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserRole))
}

// Can reports whether the authenticated user's role grants the capability.
func Can(c *gin.Context, cap domain.Capability) bool {
	return domain.RoleCapabilities(Role(c)).Has(cap)
}
