package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

// InMemStore backs tests and local development without a database. RunInTx
// works on a copy of the state and swaps it in on success, so a failed unit
// of work leaves nothing behind.
type InMemStore struct {
	mu             sync.Mutex
	customers      map[int64]domain.Customer
	projects       map[string]domain.Project
	nextCustomerID int64
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		customers:      make(map[int64]domain.Customer),
		projects:       make(map[string]domain.Project),
		nextCustomerID: 1,
	}
}

var _ Store = (*InMemStore)(nil)

type memState struct {
	customers      map[int64]domain.Customer
	projects       map[string]domain.Project
	nextCustomerID int64
}

func (s *InMemStore) snapshot() *memState {
	st := &memState{
		customers:      make(map[int64]domain.Customer, len(s.customers)),
		projects:       make(map[string]domain.Project, len(s.projects)),
		nextCustomerID: s.nextCustomerID,
	}
	for k, v := range s.customers {
		st.customers[k] = v
	}
	for k, v := range s.projects {
		st.projects[k] = v
	}
	return st
}

func (s *InMemStore) RunInTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.snapshot()
	if err := fn(&memTx{st: st}); err != nil {
		return err
	}
	s.customers = st.customers
	s.projects = st.projects
	s.nextCustomerID = st.nextCustomerID
	return nil
}

func (s *InMemStore) row(p domain.Project) ProjectRow {
	return ProjectRow{Project: p, Customer: s.customers[p.CustomerID]}
}

func (s *InMemStore) GetProject(_ context.Context, id string) (*ProjectRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	r := s.row(p)
	return &r, nil
}

func (s *InMemStore) collect(match func(domain.Project) bool) []ProjectRow {
	out := make([]ProjectRow, 0, len(s.projects))
	for _, p := range s.projects {
		if match(p) {
			out = append(out, s.row(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Project.Date.Equal(out[j].Project.Date) {
			return out[i].Project.Date.Before(out[j].Project.Date)
		}
		return out[i].Project.ID < out[j].Project.ID
	})
	return out
}

func (s *InMemStore) ListByRegion(_ context.Context, region string) ([]ProjectRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(p domain.Project) bool { return p.Region == region }), nil
}

func (s *InMemStore) LatestByRegion(_ context.Context, region string) (*ProjectRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.Project
	for _, p := range s.projects {
		p := p
		if p.Region != region {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = &p
		}
	}
	if latest == nil {
		return nil, domain.ErrProjectNotFound
	}
	r := s.row(*latest)
	return &r, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (s *InMemStore) ListByRegionAndDate(_ context.Context, region string, date time.Time) ([]ProjectRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(p domain.Project) bool {
		return p.Region == region && sameDay(p.Date, date)
	}), nil
}

func (s *InMemStore) ListByDate(_ context.Context, date time.Time) ([]ProjectRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(p domain.Project) bool { return sameDay(p.Date, date) }), nil
}

func (s *InMemStore) ListAll(_ context.Context) ([]ProjectRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(domain.Project) bool { return true }), nil
}

func (s *InMemStore) SearchCustomers(_ context.Context, term string) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term = strings.ToLower(term)
	out := make([]domain.Customer, 0, 8)
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Phone, term) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memTx struct {
	st *memState
}

var _ Tx = (*memTx)(nil)

func (t *memTx) FindCustomerByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	for _, c := range t.st.customers {
		if c.Phone == phone {
			c := c
			return &c, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (t *memTx) GetCustomer(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := t.st.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &c, nil
}

func (t *memTx) InsertCustomer(_ context.Context, c *domain.Customer) error {
	c.ID = t.st.nextCustomerID
	t.st.nextCustomerID++
	t.st.customers[c.ID] = *c
	return nil
}

func (t *memTx) UpdateCustomer(_ context.Context, c *domain.Customer) error {
	if _, ok := t.st.customers[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	t.st.customers[c.ID] = *c
	return nil
}

func (t *memTx) UpdateCustomerEmail(_ context.Context, id int64, email string) error {
	c, ok := t.st.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.Email = email
	t.st.customers[id] = c
	return nil
}

func (t *memTx) DeleteCustomer(_ context.Context, id int64) error {
	delete(t.st.customers, id)
	return nil
}

func (t *memTx) CountCustomerProjects(_ context.Context, customerID int64) (int, error) {
	n := 0
	for _, p := range t.st.projects {
		if p.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (t *memTx) GetProject(_ context.Context, id string) (*domain.Project, error) {
	p, ok := t.st.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (t *memTx) InsertProject(_ context.Context, p *domain.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	t.st.projects[p.ID] = *p
	return nil
}

func (t *memTx) UpdateProject(_ context.Context, p *domain.Project) error {
	if _, ok := t.st.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	t.st.projects[p.ID] = *p
	return nil
}

func (t *memTx) DeleteProject(_ context.Context, id string) error {
	if _, ok := t.st.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(t.st.projects, id)
	return nil
}
