package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/savageut/scheduler-backend/internal/export"
	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

// CreateProject schedules a project in the region and returns the stored
// record.
func (h *Handler) CreateProject(c *gin.Context) {
	var in domain.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	row, err := h.projects.Create(c.Request.Context(), c.Param("region"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": toProjectResponse(*row)})
}

// UpdateProject replaces a project's details. Resubmitting the same payload
// is a no-op success.
func (h *Handler) UpdateProject(c *gin.Context) {
	var in domain.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	row, err := h.projects.Update(c.Request.Context(), c.Param("region"), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(*row)})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("region"), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) GetProject(c *gin.Context) {
	row, err := h.projects.Get(c.Request.Context(), c.Param("region"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(*row)})
}

// ListProjects returns every project in the region, optionally filtered to a
// single day with ?date=YYYY-MM-DD.
func (h *Handler) ListProjects(c *gin.Context) {
	region := c.Param("region")
	ctx := c.Request.Context()

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		rows, err := h.projects.ListByRegionAndDate(ctx, region, date)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": toProjectResponses(rows)})
		return
	}

	rows, err := h.projects.ListByRegion(ctx, region)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": toProjectResponses(rows)})
}

// LatestProject returns the most recently created project in the region.
func (h *Handler) LatestProject(c *gin.Context) {
	row, err := h.projects.LatestByRegion(c.Request.Context(), c.Param("region"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(*row)})
}

// ExportAll streams every region's projects as one CSV download.
func (h *Handler) ExportAll(c *gin.Context) {
	rows, err := h.projects.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="projects.csv"`)
	if err := export.WriteAll(c.Writer, rows); err != nil {
		c.Abort()
	}
}

// ExportProjects streams the region's schedule as a CSV download.
func (h *Handler) ExportProjects(c *gin.Context) {
	region := c.Param("region")
	rows, err := h.projects.ListByRegion(c.Request.Context(), region)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+region+`_projects.csv"`)
	if err := export.WriteAll(c.Writer, rows); err != nil {
		// Headers are already out, nothing sensible left to send.
		c.Abort()
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, domain.ErrRegionMismatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
