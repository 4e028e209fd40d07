package cronjob

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

type fakeSender struct {
	reminded []string
	panicOn  string
}

func (f *fakeSender) Reminder(_ context.Context, p domain.Project, _ domain.Customer) {
	if p.ID == f.panicOn {
		panic("sender blew up")
	}
	f.reminded = append(f.reminded, p.ID)
}

func seedProject(t *testing.T, store repository.Store, date, phone, email string) *repository.ProjectRow {
	t.Helper()
	svc := service.NewProjectService(store)
	row, err := svc.Create(context.Background(), "utah_county", domain.ProjectInput{
		Date:          date,
		CustomerName:  "Customer " + phone,
		CustomerPhone: phone,
		CustomerEmail: email,
		Address:       "10 Main St",
	})
	require.NoError(t, err)
	return row
}

func TestScheduler_RunOnce(t *testing.T) {
	base := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return base.AddDate(0, 0, offset).Format(domain.DateFormat)
	}

	t.Run("reminds only tomorrow's projects", func(t *testing.T) {
		store := repository.NewInMemStore()
		tomorrow := seedProject(t, store, day(1), "801-555-0001", "a@example.com")
		seedProject(t, store, day(2), "801-555-0002", "b@example.com")
		seedProject(t, store, day(0), "801-555-0003", "c@example.com")

		sender := &fakeSender{}
		s := NewScheduler(store, sender, 9)
		s.now = func() time.Time { return base }

		s.RunOnce(context.Background())

		assert.Equal(t, []string{tomorrow.Project.ID}, sender.reminded)
	})

	t.Run("skips customers without email", func(t *testing.T) {
		store := repository.NewInMemStore()
		seedProject(t, store, day(1), "801-555-0001", "")
		withEmail := seedProject(t, store, day(1), "801-555-0002", "b@example.com")

		sender := &fakeSender{}
		s := NewScheduler(store, sender, 9)
		s.now = func() time.Time { return base }

		s.RunOnce(context.Background())

		assert.Equal(t, []string{withEmail.Project.ID}, sender.reminded)
	})

	t.Run("one panicking reminder does not stop the sweep", func(t *testing.T) {
		store := repository.NewInMemStore()
		first := seedProject(t, store, day(1), "801-555-0001", "a@example.com")
		second := seedProject(t, store, day(1), "801-555-0002", "b@example.com")

		sender := &fakeSender{panicOn: first.Project.ID}
		s := NewScheduler(store, sender, 9)
		s.now = func() time.Time { return base }

		s.RunOnce(context.Background())

		assert.Contains(t, sender.reminded, second.Project.ID)
	})

	t.Run("empty day is quiet", func(t *testing.T) {
		store := repository.NewInMemStore()
		sender := &fakeSender{}
		s := NewScheduler(store, sender, 9)
		s.now = func() time.Time { return base }

		s.RunOnce(context.Background())
		assert.Empty(t, sender.reminded)
	})
}
