package http

import (
	"github.com/gin-gonic/gin"

	authdomain "github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/middleware"
)

// Register mounts the region-scoped project routes. Reads need the
// view_calendar capability; mutations need their matching capability.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects/export", middleware.RequireCapability(authdomain.CapViewCalendar), h.ExportAll)

	region := rg.Group("/regions/:region")

	view := region.Group("", middleware.RequireCapability(authdomain.CapViewCalendar))
	view.GET("/projects", h.ListProjects)
	view.GET("/projects/latest", h.LatestProject)
	view.GET("/projects/export", h.ExportProjects)
	view.GET("/projects/:id", h.GetProject)

	region.POST("/projects", middleware.RequireCapability(authdomain.CapCreateProject), h.CreateProject)
	region.PUT("/projects/:id", middleware.RequireCapability(authdomain.CapEditProject), h.UpdateProject)
	region.DELETE("/projects/:id", middleware.RequireCapability(authdomain.CapDeleteProject), h.DeleteProject)
}
