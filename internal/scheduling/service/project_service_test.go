package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

func validInput() domain.ProjectInput {
	return domain.ProjectInput{
		Date:          "2026-06-15",
		CustomerName:  "Jordan Avery",
		CustomerPhone: "801-555-0100",
		CustomerEmail: "jordan@example.com",
		Address:       "123 Alder Ln",
		City:          "Lehi",
		SquareFootage: 1200,
		WorkType:      []string{"driveway", "patio"},
		JobCostType:   []string{"flatwork"},
	}
}

type recordingHook struct {
	name   string
	events []domain.Event
	err    error
}

func (h *recordingHook) Name() string { return h.name }

func (h *recordingHook) Run(_ context.Context, evt domain.Event) error {
	h.events = append(h.events, evt)
	return h.err
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates project and customer", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		assert.NotEmpty(t, row.Project.ID)
		assert.Equal(t, "utah_county", row.Project.Region)
		assert.Equal(t, "driveway,patio", row.Project.WorkType)
		assert.Equal(t, "flatwork", row.Project.JobCostType)
		assert.Equal(t, "Jordan Avery", row.Customer.Name)
		assert.Equal(t, row.Customer.ID, row.Project.CustomerID)
	})

	t.Run("reuses customer on same phone and name", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		first, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		in := validInput()
		in.Address = "456 Birch St"
		second, err := svc.Create(ctx, "utah_county", in)
		require.NoError(t, err)

		assert.Equal(t, first.Customer.ID, second.Customer.ID)
	})

	t.Run("same phone with new name gets a fresh customer", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		first, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		in := validInput()
		in.CustomerName = "Avery Homes LLC"
		second, err := svc.Create(ctx, "utah_county", in)
		require.NoError(t, err)

		assert.NotEqual(t, first.Customer.ID, second.Customer.ID)

		// the original record is left as it was
		orig, err := svc.Get(ctx, "utah_county", first.Project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jordan Avery", orig.Customer.Name)
	})

	t.Run("updates email on returning customer", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		_, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		in := validInput()
		in.CustomerEmail = "new@example.com"
		row, err := svc.Create(ctx, "utah_county", in)
		require.NoError(t, err)

		assert.Equal(t, "new@example.com", row.Customer.Email)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		cases := []struct {
			field  string
			mutate func(*domain.ProjectInput)
		}{
			{"date", func(in *domain.ProjectInput) { in.Date = "" }},
			{"date", func(in *domain.ProjectInput) { in.Date = "June 15 2026" }},
			{"address", func(in *domain.ProjectInput) { in.Address = "  " }},
			{"customer_name", func(in *domain.ProjectInput) { in.CustomerName = "" }},
			{"customer_phone", func(in *domain.ProjectInput) { in.CustomerPhone = "" }},
		}
		for _, tc := range cases {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, "utah_county", in)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		}

		_, err := svc.Create(ctx, "", validInput())
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "region", vErr.Field)
	})

	t.Run("failed hook does not undo the write", func(t *testing.T) {
		store := repository.NewInMemStore()
		failing := &recordingHook{name: "boom", err: errors.New("smtp down")}
		after := &recordingHook{name: "after"}
		svc := NewProjectService(store, failing, after)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		// project persisted despite the hook failure, and later hooks ran
		_, err = svc.Get(ctx, "utah_county", row.Project.ID)
		assert.NoError(t, err)
		assert.Len(t, after.events, 1)
		assert.Equal(t, domain.EventCreated, after.events[0].Type)
	})
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites project details", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		in := validInput()
		in.Date = "2026-06-20"
		in.Notes = "rescheduled"
		in.WorkType = []string{"patio"}
		updated, err := svc.Update(ctx, "utah_county", row.Project.ID, in)
		require.NoError(t, err)

		assert.Equal(t, "2026-06-20", updated.Project.Date.Format(domain.DateFormat))
		assert.Equal(t, "rescheduled", updated.Project.Notes)
		assert.Equal(t, "patio", updated.Project.WorkType)
		assert.Equal(t, row.Customer.ID, updated.Customer.ID)
	})

	t.Run("resubmitting the same payload is a no-op", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		first, err := svc.Update(ctx, "utah_county", row.Project.ID, validInput())
		require.NoError(t, err)
		second, err := svc.Update(ctx, "utah_county", row.Project.ID, validInput())
		require.NoError(t, err)

		assert.Equal(t, first.Customer.ID, second.Customer.ID)
		assert.Equal(t, first.Project.CustomerID, second.Project.CustomerID)
	})

	t.Run("changed customer details point at a fresh record", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		in := validInput()
		in.CustomerPhone = "801-555-0199"
		updated, err := svc.Update(ctx, "utah_county", row.Project.ID, in)
		require.NoError(t, err)

		assert.NotEqual(t, row.Customer.ID, updated.Customer.ID)
		assert.Equal(t, "801-555-0199", updated.Customer.Phone)
	})

	t.Run("region is immutable", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		_, err = svc.Update(ctx, "salt_lake", row.Project.ID, validInput())
		assert.ErrorIs(t, err, domain.ErrRegionMismatch)
	})

	t.Run("unknown project", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		_, err := svc.Update(ctx, "utah_county", "no-such-id", validInput())
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes customer with no remaining projects", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "utah_county", row.Project.ID))

		results, err := store.SearchCustomers(ctx, "Jordan")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("keeps customer who still has projects", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		first, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)
		in := validInput()
		in.Address = "456 Birch St"
		_, err = svc.Create(ctx, "utah_county", in)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "utah_county", first.Project.ID))

		results, err := store.SearchCustomers(ctx, "Jordan")
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("region mismatch leaves everything in place", func(t *testing.T) {
		store := repository.NewInMemStore()
		svc := NewProjectService(store)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)

		err = svc.Delete(ctx, "salt_lake", row.Project.ID)
		assert.ErrorIs(t, err, domain.ErrRegionMismatch)

		_, err = svc.Get(ctx, "utah_county", row.Project.ID)
		assert.NoError(t, err)
	})

	t.Run("emits deleted event with the removed snapshot", func(t *testing.T) {
		store := repository.NewInMemStore()
		hook := &recordingHook{name: "rec"}
		svc := NewProjectService(store, hook)

		row, err := svc.Create(ctx, "utah_county", validInput())
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, "utah_county", row.Project.ID))

		require.Len(t, hook.events, 2)
		evt := hook.events[1]
		assert.Equal(t, domain.EventDeleted, evt.Type)
		assert.Equal(t, row.Project.ID, evt.Project.ID)
		assert.Equal(t, row.Customer.ID, evt.Customer.ID)
	})
}

func TestProjectService_Reads(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemStore()
	svc := NewProjectService(store)

	a, err := svc.Create(ctx, "utah_county", validInput())
	require.NoError(t, err)

	in := validInput()
	in.Date = "2026-06-16"
	in.CustomerPhone = "801-555-0111"
	in.CustomerName = "Sam Rowe"
	b, err := svc.Create(ctx, "salt_lake", in)
	require.NoError(t, err)

	t.Run("get is region scoped", func(t *testing.T) {
		_, err := svc.Get(ctx, "utah_county", a.Project.ID)
		assert.NoError(t, err)

		_, err = svc.Get(ctx, "salt_lake", a.Project.ID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("list by region", func(t *testing.T) {
		rows, err := svc.ListByRegion(ctx, "utah_county")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, a.Project.ID, rows[0].Project.ID)
	})

	t.Run("list by region and date", func(t *testing.T) {
		rows, err := svc.ListByRegionAndDate(ctx, "salt_lake", b.Project.Date)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, b.Project.ID, rows[0].Project.ID)

		rows, err = svc.ListByRegionAndDate(ctx, "salt_lake", a.Project.Date)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("list all spans regions", func(t *testing.T) {
		rows, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}
