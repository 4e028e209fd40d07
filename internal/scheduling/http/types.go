package http

import (
	"time"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
	"github.com/savageut/scheduler-backend/internal/scheduling/service"
)

type Handler struct {
	projects *service.ProjectService
}

func New(projects *service.ProjectService) *Handler {
	return &Handler{
		projects: projects,
	}
}

// projectResponse is the wire shape for a scheduled project with its
// customer flattened in, mirroring what the calendar needs in one call.
type projectResponse struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	PO            string    `json:"po,omitempty"`
	Address       string    `json:"address"`
	City          string    `json:"city,omitempty"`
	Subdivision   string    `json:"subdivision,omitempty"`
	LotNumber     string    `json:"lot_number,omitempty"`
	SquareFootage int       `json:"square_footage,omitempty"`
	JobCostType   []string  `json:"job_cost_type"`
	WorkType      []string  `json:"work_type"`
	Notes         string    `json:"notes,omitempty"`
	Region        string    `json:"region"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CustomerID    int64  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

func toProjectResponse(row repository.ProjectRow) projectResponse {
	p, c := row.Project, row.Customer
	return projectResponse{
		ID:            p.ID,
		Date:          p.Date.Format(domain.DateFormat),
		PO:            p.PO,
		Address:       p.Address,
		City:          p.City,
		Subdivision:   p.Subdivision,
		LotNumber:     p.LotNumber,
		SquareFootage: p.SquareFootage,
		JobCostType:   domain.DecodeTags(p.JobCostType),
		WorkType:      domain.DecodeTags(p.WorkType),
		Notes:         p.Notes,
		Region:        p.Region,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CustomerID:    c.ID,
		CustomerName:  c.Name,
		CustomerPhone: c.Phone,
		CustomerEmail: c.Email,
	}
}

func toProjectResponses(rows []repository.ProjectRow) []projectResponse {
	out := make([]projectResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProjectResponse(row))
	}
	return out
}
