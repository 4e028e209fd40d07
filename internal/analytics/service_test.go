package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
	"github.com/savageut/scheduler-backend/internal/scheduling/service"
)

func TestService_RegionStats(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemStore()
	projects := service.NewProjectService(store)

	create := func(date, phone, name string, sqft int, work []string) {
		t.Helper()
		_, err := projects.Create(ctx, "utah_county", domain.ProjectInput{
			Date:          date,
			CustomerName:  name,
			CustomerPhone: phone,
			Address:       "10 Main St",
			SquareFootage: sqft,
			WorkType:      work,
			JobCostType:   []string{"flatwork"},
		})
		require.NoError(t, err)
	}

	create("2026-06-10", "801-555-0001", "Jordan Avery", 1000, []string{"driveway"})
	create("2026-06-12", "801-555-0001", "Jordan Avery", 500, []string{"driveway", "patio"})
	create("2026-06-12", "801-555-0002", "Sam Rowe", 800, []string{"patio"})
	create("2026-07-01", "801-555-0003", "Out Of Range", 999, []string{"basement"})

	svc := NewService(store)
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	stats, err := svc.RegionStats(ctx, "utah_county", from, to)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.ProjectCount)
	assert.Equal(t, 2, stats.CustomerCount)
	assert.Equal(t, 2300, stats.TotalSquareFt)

	assert.Equal(t, 2, stats.WorkTypes["driveway"])
	assert.Equal(t, 2, stats.WorkTypes["patio"])
	assert.Zero(t, stats.WorkTypes["basement"])
	assert.Equal(t, 3, stats.JobCostTypes["flatwork"])

	assert.Equal(t, 1, stats.ByDate["2026-06-10"])
	assert.Equal(t, 2, stats.ByDate["2026-06-12"])

	t.Run("other regions are excluded", func(t *testing.T) {
		stats, err := svc.RegionStats(ctx, "salt_lake", from, to)
		require.NoError(t, err)
		assert.Zero(t, stats.ProjectCount)
	})

	t.Run("range is inclusive", func(t *testing.T) {
		stats, err := svc.RegionStats(ctx, "utah_county",
			time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 2, stats.ProjectCount)
	})
}
