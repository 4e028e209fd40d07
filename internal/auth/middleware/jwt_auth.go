package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/savageut/scheduler-backend/internal/auth"
	"github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/service"
)

// JWTAuthMiddleware validates bearer tokens and stores the user's identity
// in the request context.
func JWTAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := authService.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserID, userID)
		c.Set(auth.CtxUsername, claims.Username)
		c.Set(auth.CtxUserRole, claims.Role)

		c.Next()
	}
}

// RequireCapability rejects requests whose role does not grant the
// capability. Must run after JWTAuthMiddleware.
func RequireCapability(cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Can(c, cap) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
