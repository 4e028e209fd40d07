package analytics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authdomain "github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/middleware"
	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/regions/:region/stats",
		middleware.RequireCapability(authdomain.CapViewCalendar), h.RegionStats)
}

// RegionStats handles GET /regions/:region/stats?from=...&to=...
// Defaults to the trailing 30 days when the range is omitted.
func (h *Handler) RegionStats(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if s := c.Query("from"); s != "" {
		t, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = t
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	stats, err := h.svc.RegionStats(c.Request.Context(), c.Param("region"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
