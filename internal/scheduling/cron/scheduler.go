package cronjob

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

// ReminderSender is the slice of the notification dispatcher the trigger
// needs.
type ReminderSender interface {
	Reminder(ctx context.Context, p domain.Project, c domain.Customer)
}

// Scheduler runs the day-before reminder sweep once per day at a fixed
// wall-clock hour, across all regions.
type Scheduler struct {
	store  repository.Store
	sender ReminderSender
	hour   int
	now    func() time.Time
	c      *cron.Cron
}

func NewScheduler(store repository.Store, sender ReminderSender, hour int) *Scheduler {
	return &Scheduler{
		store:  store,
		sender: sender,
		hour:   hour,
		now:    time.Now,
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.c = cron.New(cron.WithSeconds())

	spec := fmt.Sprintf("0 0 %d * * *", s.hour)
	_, err := s.c.AddFunc(spec, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("cron: %w", err)
	}

	log.Printf("[cron] reminder scheduler started (daily at %02d:00)", s.hour)
	s.c.Start()
	return nil
}

func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
		log.Println("[cron] reminder scheduler stopped")
	}
}

// RunOnce performs a single sweep: find every project scheduled for
// tomorrow and send its reminder. One project's failure never stops the
// rest; a customer without an email is skipped entirely.
func (s *Scheduler) RunOnce(ctx context.Context) {
	tomorrow := s.now().AddDate(0, 0, 1)
	log.Printf("[cron] checking projects scheduled for %s", tomorrow.Format(domain.DateFormat))

	rows, err := s.store.ListByDate(ctx, tomorrow)
	if err != nil {
		log.Printf("[cron] list projects for %s: %v", tomorrow.Format(domain.DateFormat), err)
		return
	}
	log.Printf("[cron] %d project(s) scheduled for tomorrow", len(rows))

	for _, row := range rows {
		if row.Customer.Email == "" {
			log.Printf("[cron] project %s: customer has no email, skipping", row.Project.ID)
			continue
		}
		s.remind(ctx, row)
	}
}

func (s *Scheduler) remind(ctx context.Context, row repository.ProjectRow) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[cron] reminder for project %s panicked: %v", row.Project.ID, r)
		}
	}()
	s.sender.Reminder(ctx, row.Project, row.Customer)
}
