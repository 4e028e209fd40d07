package analytics

import (
	"context"
	"time"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

// RegionStats summarizes scheduling activity for one region over a date
// range.
type RegionStats struct {
	Region        string         `json:"region"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	ProjectCount  int            `json:"project_count"`
	CustomerCount int            `json:"customer_count"`
	TotalSquareFt int            `json:"total_square_footage"`
	WorkTypes     map[string]int `json:"work_types"`
	JobCostTypes  map[string]int `json:"job_cost_types"`
	ByDate        map[string]int `json:"by_date"`
}

type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

// RegionStats aggregates the region's projects whose date falls in
// [from, to] inclusive.
func (s *Service) RegionStats(ctx context.Context, region string, from, to time.Time) (*RegionStats, error) {
	rows, err := s.store.ListByRegion(ctx, region)
	if err != nil {
		return nil, err
	}

	stats := &RegionStats{
		Region:       region,
		From:         from.Format(domain.DateFormat),
		To:           to.Format(domain.DateFormat),
		WorkTypes:    map[string]int{},
		JobCostTypes: map[string]int{},
		ByDate:       map[string]int{},
	}

	customers := map[int64]struct{}{}
	for _, row := range rows {
		d := row.Project.Date
		if d.Before(from) || d.After(to) {
			continue
		}

		stats.ProjectCount++
		stats.TotalSquareFt += row.Project.SquareFootage
		stats.ByDate[d.Format(domain.DateFormat)]++
		customers[row.Customer.ID] = struct{}{}

		for _, t := range domain.DecodeTags(row.Project.WorkType) {
			stats.WorkTypes[t]++
		}
		for _, t := range domain.DecodeTags(row.Project.JobCostType) {
			stats.JobCostTypes[t]++
		}
	}
	stats.CustomerCount = len(customers)

	return stats, nil
}
