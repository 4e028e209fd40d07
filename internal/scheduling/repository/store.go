package repository

import (
	"context"
	"time"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

// ProjectRow is a project joined with its owning customer, the shape every
// read endpoint and side effect wants.
type ProjectRow struct {
	Project  domain.Project
	Customer domain.Customer
}

// Store is the persistence boundary for projects and customers. Mutations
// go through RunInTx so the customer and project writes of one submission
// commit or roll back together.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	GetProject(ctx context.Context, id string) (*ProjectRow, error)
	ListByRegion(ctx context.Context, region string) ([]ProjectRow, error)
	LatestByRegion(ctx context.Context, region string) (*ProjectRow, error)
	ListByRegionAndDate(ctx context.Context, region string, date time.Time) ([]ProjectRow, error)
	ListByDate(ctx context.Context, date time.Time) ([]ProjectRow, error)
	ListAll(ctx context.Context) ([]ProjectRow, error)
	SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error)
}

// Tx exposes the row-level operations available inside one unit of work.
type Tx interface {
	FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	InsertCustomer(ctx context.Context, c *domain.Customer) error
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	UpdateCustomerEmail(ctx context.Context, id int64, email string) error
	DeleteCustomer(ctx context.Context, id int64) error
	CountCustomerProjects(ctx context.Context, customerID int64) (int, error)

	GetProject(ctx context.Context, id string) (*domain.Project, error)
	InsertProject(ctx context.Context, p *domain.Project) error
	UpdateProject(ctx context.Context, p *domain.Project) error
	DeleteProject(ctx context.Context, id string) error
}
