package customers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/middleware"
)

type Handler struct {
	search *SearchService
}

func NewHandler(search *SearchService) *Handler {
	return &Handler{search: search}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/customers/search",
		middleware.RequireCapability(authdomain.CapViewCalendar), h.Search)
}

// Search handles GET /customers/search?q=term. Matches against name, phone
// and email.
func (h *Handler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	results, err := h.search.Search(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": results})
}
