package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

// ProjectService applies project mutations as single units of work: the
// customer reconciliation write and the project write share one transaction,
// and registered hooks fire only after that transaction commits.
type ProjectService struct {
	store repository.Store
	hooks []Hook
}

func NewProjectService(store repository.Store, hooks ...Hook) *ProjectService {
	return &ProjectService{store: store, hooks: hooks}
}

func (s *ProjectService) validate(region string, in domain.ProjectInput) (time.Time, error) {
	if strings.TrimSpace(region) == "" {
		return time.Time{}, domain.NewValidationError("region")
	}
	if in.Date == "" {
		return time.Time{}, domain.NewValidationError("date")
	}
	date, err := time.Parse(domain.DateFormat, in.Date)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date")
	}
	if strings.TrimSpace(in.Address) == "" {
		return time.Time{}, domain.NewValidationError("address")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return time.Time{}, domain.NewValidationError("customer_name")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return time.Time{}, domain.NewValidationError("customer_phone")
	}
	return date, nil
}

// resolveCustomer finds or creates the customer a new project attaches to.
// Phone is the lookup key, compared exactly. A matching phone with a
// different name means a fresh record: history is never merged or rewritten.
func resolveCustomer(ctx context.Context, tx repository.Tx, in domain.ProjectInput) (*domain.Customer, error) {
	found, err := tx.FindCustomerByPhone(ctx, in.CustomerPhone)
	if err != nil && err != domain.ErrCustomerNotFound {
		return nil, err
	}

	if found == nil || found.Name != in.CustomerName {
		c := &domain.Customer{
			Name:  in.CustomerName,
			Phone: in.CustomerPhone,
			Email: in.CustomerEmail,
		}
		if err := tx.InsertCustomer(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	if in.CustomerEmail != "" && in.CustomerEmail != found.Email {
		if err := tx.UpdateCustomerEmail(ctx, found.ID, in.CustomerEmail); err != nil {
			return nil, err
		}
		found.Email = in.CustomerEmail
	}
	return found, nil
}

func (s *ProjectService) Create(ctx context.Context, region string, in domain.ProjectInput) (*repository.ProjectRow, error) {
	date, err := s.validate(region, in)
	if err != nil {
		return nil, err
	}

	row := &repository.ProjectRow{}
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		cust, err := resolveCustomer(ctx, tx, in)
		if err != nil {
			return err
		}

		p := domain.Project{
			ID:            uuid.NewString(),
			Date:          date,
			PO:            in.PO,
			Address:       in.Address,
			City:          in.City,
			Subdivision:   in.Subdivision,
			LotNumber:     in.LotNumber,
			SquareFootage: in.SquareFootage,
			JobCostType:   domain.EncodeTags(in.JobCostType),
			WorkType:      domain.EncodeTags(in.WorkType),
			Notes:         in.Notes,
			Region:        region,
			CustomerID:    cust.ID,
		}
		if err := tx.InsertProject(ctx, &p); err != nil {
			return err
		}

		row.Project = p
		row.Customer = *cust
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[projects] created %s in region %s for customer %d", row.Project.ID, region, row.Customer.ID)
	runHooks(ctx, s.hooks, domain.Event{Type: domain.EventCreated, Project: row.Project, Customer: row.Customer})
	return row, nil
}

func (s *ProjectService) Update(ctx context.Context, region, id string, in domain.ProjectInput) (*repository.ProjectRow, error) {
	date, err := s.validate(region, in)
	if err != nil {
		return nil, err
	}

	row := &repository.ProjectRow{}
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		p, err := tx.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if p.Region != region {
			return domain.ErrRegionMismatch
		}

		current, err := tx.GetCustomer(ctx, p.CustomerID)
		if err != nil {
			return err
		}

		// Reconcile against the project's current customer snapshot. A
		// changed name or phone points the project at a fresh record and
		// leaves the old one untouched; an identical payload changes
		// nothing, which is what makes re-submission idempotent.
		cust := current
		if current.Name != in.CustomerName || current.Phone != in.CustomerPhone {
			cust = &domain.Customer{
				Name:  in.CustomerName,
				Phone: in.CustomerPhone,
				Email: in.CustomerEmail,
			}
			if err := tx.InsertCustomer(ctx, cust); err != nil {
				return err
			}
		} else if in.CustomerEmail != "" && in.CustomerEmail != current.Email {
			if err := tx.UpdateCustomerEmail(ctx, current.ID, in.CustomerEmail); err != nil {
				return err
			}
			cust.Email = in.CustomerEmail
		}

		p.Date = date
		p.PO = in.PO
		p.Address = in.Address
		p.City = in.City
		p.Subdivision = in.Subdivision
		p.LotNumber = in.LotNumber
		p.SquareFootage = in.SquareFootage
		p.JobCostType = domain.EncodeTags(in.JobCostType)
		p.WorkType = domain.EncodeTags(in.WorkType)
		p.Notes = in.Notes
		p.CustomerID = cust.ID

		if err := tx.UpdateProject(ctx, p); err != nil {
			return err
		}

		row.Project = *p
		row.Customer = *cust
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[projects] updated %s in region %s", id, region)
	runHooks(ctx, s.hooks, domain.Event{Type: domain.EventUpdated, Project: row.Project, Customer: row.Customer})
	return row, nil
}

func (s *ProjectService) Delete(ctx context.Context, region, id string) error {
	row := &repository.ProjectRow{}
	err := s.store.RunInTx(ctx, func(tx repository.Tx) error {
		p, err := tx.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if p.Region != region {
			return domain.ErrRegionMismatch
		}

		cust, err := tx.GetCustomer(ctx, p.CustomerID)
		if err != nil {
			return err
		}

		if err := tx.DeleteProject(ctx, id); err != nil {
			return err
		}

		// Storage reclamation: a customer with no remaining projects goes
		// with its last project.
		n, err := tx.CountCustomerProjects(ctx, cust.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			if err := tx.DeleteCustomer(ctx, cust.ID); err != nil {
				return err
			}
		}

		row.Project = *p
		row.Customer = *cust
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[projects] deleted %s in region %s", id, region)
	runHooks(ctx, s.hooks, domain.Event{Type: domain.EventDeleted, Project: row.Project, Customer: row.Customer})
	return nil
}

// Read pass-throughs for the HTTP layer.

func (s *ProjectService) Get(ctx context.Context, region, id string) (*repository.ProjectRow, error) {
	row, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.Project.Region != region {
		return nil, domain.ErrProjectNotFound
	}
	return row, nil
}

func (s *ProjectService) ListByRegion(ctx context.Context, region string) ([]repository.ProjectRow, error) {
	return s.store.ListByRegion(ctx, region)
}

func (s *ProjectService) LatestByRegion(ctx context.Context, region string) (*repository.ProjectRow, error) {
	return s.store.LatestByRegion(ctx, region)
}

func (s *ProjectService) ListByRegionAndDate(ctx context.Context, region string, date time.Time) ([]repository.ProjectRow, error) {
	return s.store.ListByRegionAndDate(ctx, region, date)
}

func (s *ProjectService) ListAll(ctx context.Context) ([]repository.ProjectRow, error) {
	return s.store.ListAll(ctx)
}
