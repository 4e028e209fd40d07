package bootstrap

import (
	"context"

	"github.com/savageut/scheduler-backend/internal/customers"
	"github.com/savageut/scheduler-backend/internal/export"
	"github.com/savageut/scheduler-backend/internal/notify"
	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
	"github.com/savageut/scheduler-backend/internal/scheduling/service"
)

// ExportHook keeps the per-region CSV file in step with the calendar.
// Creates and updates append; deletes regenerate the whole file.
func ExportHook(w *export.Writer, store repository.Store) service.Hook {
	return service.HookFunc{
		HookName: "export",
		Fn: func(ctx context.Context, evt domain.Event) error {
			if evt.Type == domain.EventDeleted {
				rows, err := store.ListByRegion(ctx, evt.Project.Region)
				if err != nil {
					return err
				}
				return w.Rewrite(evt.Project.Region, rows)
			}
			return w.Append(evt.Project.Region, repository.ProjectRow{
				Project:  evt.Project,
				Customer: evt.Customer,
			})
		},
	}
}

// NotifyHook sends confirmation and update messages after a commit.
func NotifyHook(d *notify.Dispatcher) service.Hook {
	return service.HookFunc{
		HookName: "notify",
		Fn:       d.Dispatch,
	}
}

// CacheHook drops cached customer search results after any mutation.
func CacheHook(search *customers.SearchService) service.Hook {
	return service.HookFunc{
		HookName: "cache",
		Fn: func(ctx context.Context, evt domain.Event) error {
			return search.InvalidateAll(ctx)
		},
	}
}
