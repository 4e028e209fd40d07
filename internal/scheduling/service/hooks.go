package service

import (
	"context"
	"log"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

// Hook is a best-effort side effect run after a mutation commits. Hooks run
// sequentially in registration order; a failing or panicking hook is logged
// and the remaining hooks still run. Nothing a hook does can roll back the
// mutation it observed.
type Hook interface {
	Name() string
	Run(ctx context.Context, evt domain.Event) error
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc struct {
	HookName string
	Fn       func(ctx context.Context, evt domain.Event) error
}

func (h HookFunc) Name() string { return h.HookName }

func (h HookFunc) Run(ctx context.Context, evt domain.Event) error {
	return h.Fn(ctx, evt)
}

func runHooks(ctx context.Context, hooks []Hook, evt domain.Event) {
	for _, h := range hooks {
		runHook(ctx, h, evt)
	}
}

func runHook(ctx context.Context, h Hook, evt domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[hooks] %s panicked on %s of project %s: %v", h.Name(), evt.Type, evt.Project.ID, r)
		}
	}()
	if err := h.Run(ctx, evt); err != nil {
		log.Printf("[hooks] %s failed on %s of project %s: %v", h.Name(), evt.Type, evt.Project.ID, err)
	}
}
