package http

import (
	"github.com/gin-gonic/gin"

	"github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/middleware"
)

// RegisterPublic mounts routes that do not require a token. The rate
// limiter guards the login endpoint only.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup, loginLimiter gin.HandlerFunc) {
	rg.POST("/login", loginLimiter, h.Login)
	rg.POST("/register", h.RegisterUser)
}

// Register mounts authenticated routes. User administration requires the
// manage_users capability.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)

	admin := rg.Group("/users", middleware.RequireCapability(domain.CapManageUsers))
	admin.GET("", h.ListUsers)
	admin.POST("/invitations", h.Invite)
	admin.PATCH("/:id/active", h.SetUserActive)
}
