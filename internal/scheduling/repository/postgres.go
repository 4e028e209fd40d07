package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Op: "commit", Err: err}
	}
	return nil
}

const projectRowCols = `
p.id, p.date, coalesce(p.po,''), p.address, coalesce(p.city,''),
coalesce(p.subdivision,''), coalesce(p.lot_number,''), coalesce(p.square_footage,0),
coalesce(p.job_cost_type,''), coalesce(p.work_type,''), coalesce(p.notes,''),
p.region, p.customer_id, p.created_at, p.updated_at,
c.id, coalesce(c.name,''), coalesce(c.first_name,''), coalesce(c.last_name,''),
c.phone, coalesce(c.email,'')`

func scanProjectRow(row pgx.Row) (*ProjectRow, error) {
	var r ProjectRow
	err := row.Scan(
		&r.Project.ID, &r.Project.Date, &r.Project.PO, &r.Project.Address, &r.Project.City,
		&r.Project.Subdivision, &r.Project.LotNumber, &r.Project.SquareFootage,
		&r.Project.JobCostType, &r.Project.WorkType, &r.Project.Notes,
		&r.Project.Region, &r.Project.CustomerID, &r.Project.CreatedAt, &r.Project.UpdatedAt,
		&r.Customer.ID, &r.Customer.Name, &r.Customer.FirstName, &r.Customer.LastName,
		&r.Customer.Phone, &r.Customer.Email,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (*ProjectRow, error) {
	const q = `
select ` + projectRowCols + `
from project p join customer c on c.id = p.customer_id
where p.id = $1;
`
	r, err := scanProjectRow(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get project", Err: err}
	}
	return r, nil
}

func (s *PostgresStore) queryRows(ctx context.Context, q string, args ...any) ([]ProjectRow, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "list projects", Err: err}
	}
	defer rows.Close()

	out := make([]ProjectRow, 0, 16)
	for rows.Next() {
		r, err := scanProjectRow(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "scan project", Err: err}
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list projects", Err: err}
	}
	return out, nil
}

func (s *PostgresStore) ListByRegion(ctx context.Context, region string) ([]ProjectRow, error) {
	const q = `
select ` + projectRowCols + `
from project p join customer c on c.id = p.customer_id
where p.region = $1
order by p.date;
`
	return s.queryRows(ctx, q, region)
}

func (s *PostgresStore) LatestByRegion(ctx context.Context, region string) (*ProjectRow, error) {
	const q = `
select ` + projectRowCols + `
from project p join customer c on c.id = p.customer_id
where p.region = $1
order by p.created_at desc
limit 1;
`
	r, err := scanProjectRow(s.db.QueryRow(ctx, q, region))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "latest project", Err: err}
	}
	return r, nil
}

func (s *PostgresStore) ListByRegionAndDate(ctx context.Context, region string, date time.Time) ([]ProjectRow, error) {
	const q = `
select ` + projectRowCols + `
from project p join customer c on c.id = p.customer_id
where p.region = $1 and p.date = $2
order by p.created_at;
`
	return s.queryRows(ctx, q, region, date)
}

func (s *PostgresStore) ListByDate(ctx context.Context, date time.Time) ([]ProjectRow, error) {
	const q = `
select ` + projectRowCols + `
from project p join customer c on c.id = p.customer_id
where p.date = $1
order by p.region, p.created_at;
`
	return s.queryRows(ctx, q, date)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]ProjectRow, error) {
	const q = `
select ` + projectRowCols + `
from project p join customer c on c.id = p.customer_id
order by p.date;
`
	return s.queryRows(ctx, q)
}

func (s *PostgresStore) SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	const q = `
select id, coalesce(name,''), coalesce(first_name,''), coalesce(last_name,''), phone, coalesce(email,'')
from customer
where name ilike '%' || $1 || '%' or phone like '%' || $1 || '%'
order by name
limit 50;
`
	rows, err := s.db.Query(ctx, q, term)
	if err != nil {
		return nil, &domain.StorageError{Op: "search customers", Err: err}
	}
	defer rows.Close()

	out := make([]domain.Customer, 0, 16)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.FirstName, &c.LastName, &c.Phone, &c.Email); err != nil {
			return nil, &domain.StorageError{Op: "scan customer", Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type pgTx struct {
	tx pgx.Tx
}

var _ Tx = (*pgTx)(nil)

func (t *pgTx) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	// Exact string match, no formatting normalization. Dashes or spacing
	// differences produce a miss and therefore a fresh customer record.
	const q = `
select id, coalesce(name,''), coalesce(first_name,''), coalesce(last_name,''), phone, coalesce(email,'')
from customer
where phone = $1
limit 1;
`
	var c domain.Customer
	err := t.tx.QueryRow(ctx, q, phone).Scan(&c.ID, &c.Name, &c.FirstName, &c.LastName, &c.Phone, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find customer by phone", Err: err}
	}
	return &c, nil
}

func (t *pgTx) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
select id, coalesce(name,''), coalesce(first_name,''), coalesce(last_name,''), phone, coalesce(email,'')
from customer
where id = $1;
`
	var c domain.Customer
	err := t.tx.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.FirstName, &c.LastName, &c.Phone, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get customer", Err: err}
	}
	return &c, nil
}

func (t *pgTx) InsertCustomer(ctx context.Context, c *domain.Customer) error {
	const q = `
insert into customer (name, first_name, last_name, phone, email)
values ($1, nullif($2,''), nullif($3,''), $4, nullif($5,''))
returning id;
`
	if err := t.tx.QueryRow(ctx, q, c.Name, c.FirstName, c.LastName, c.Phone, c.Email).Scan(&c.ID); err != nil {
		return &domain.StorageError{Op: "insert customer", Err: err}
	}
	return nil
}

func (t *pgTx) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	const q = `
update customer set
  name = $2, first_name = nullif($3,''), last_name = nullif($4,''),
  phone = $5, email = nullif($6,'')
where id = $1;
`
	if _, err := t.tx.Exec(ctx, q, c.ID, c.Name, c.FirstName, c.LastName, c.Phone, c.Email); err != nil {
		return &domain.StorageError{Op: "update customer", Err: err}
	}
	return nil
}

func (t *pgTx) UpdateCustomerEmail(ctx context.Context, id int64, email string) error {
	const q = `update customer set email = $2 where id = $1;`
	if _, err := t.tx.Exec(ctx, q, id, email); err != nil {
		return &domain.StorageError{Op: "update customer email", Err: err}
	}
	return nil
}

func (t *pgTx) DeleteCustomer(ctx context.Context, id int64) error {
	const q = `delete from customer where id = $1;`
	if _, err := t.tx.Exec(ctx, q, id); err != nil {
		return &domain.StorageError{Op: "delete customer", Err: err}
	}
	return nil
}

func (t *pgTx) CountCustomerProjects(ctx context.Context, customerID int64) (int, error) {
	const q = `select count(*) from project where customer_id = $1;`
	var n int
	if err := t.tx.QueryRow(ctx, q, customerID).Scan(&n); err != nil {
		return 0, &domain.StorageError{Op: "count customer projects", Err: err}
	}
	return n, nil
}

func (t *pgTx) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
select id, date, coalesce(po,''), address, coalesce(city,''), coalesce(subdivision,''),
       coalesce(lot_number,''), coalesce(square_footage,0), coalesce(job_cost_type,''),
       coalesce(work_type,''), coalesce(notes,''), region, customer_id, created_at, updated_at
from project
where id = $1
for update;
`
	var p domain.Project
	err := t.tx.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Date, &p.PO, &p.Address, &p.City, &p.Subdivision,
		&p.LotNumber, &p.SquareFootage, &p.JobCostType,
		&p.WorkType, &p.Notes, &p.Region, &p.CustomerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get project", Err: err}
	}
	return &p, nil
}

func (t *pgTx) InsertProject(ctx context.Context, p *domain.Project) error {
	const q = `
insert into project
  (id, date, po, address, city, subdivision, lot_number, square_footage,
   job_cost_type, work_type, notes, region, customer_id)
values
  ($1, $2, nullif($3,''), $4, nullif($5,''), nullif($6,''), nullif($7,''), nullif($8,0),
   nullif($9,''), nullif($10,''), nullif($11,''), $12, $13)
returning created_at, updated_at;
`
	err := t.tx.QueryRow(ctx, q,
		p.ID, p.Date, p.PO, p.Address, p.City, p.Subdivision, p.LotNumber, p.SquareFootage,
		p.JobCostType, p.WorkType, p.Notes, p.Region, p.CustomerID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return &domain.StorageError{Op: "insert project", Err: err}
	}
	return nil
}

func (t *pgTx) UpdateProject(ctx context.Context, p *domain.Project) error {
	const q = `
update project set
  date = $2, po = nullif($3,''), address = $4, city = nullif($5,''),
  subdivision = nullif($6,''), lot_number = nullif($7,''), square_footage = nullif($8,0),
  job_cost_type = nullif($9,''), work_type = nullif($10,''), notes = nullif($11,''),
  customer_id = $12, updated_at = now()
where id = $1
returning updated_at;
`
	err := t.tx.QueryRow(ctx, q,
		p.ID, p.Date, p.PO, p.Address, p.City, p.Subdivision, p.LotNumber, p.SquareFootage,
		p.JobCostType, p.WorkType, p.Notes, p.CustomerID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProjectNotFound
	}
	if err != nil {
		return &domain.StorageError{Op: "update project", Err: err}
	}
	return nil
}

func (t *pgTx) DeleteProject(ctx context.Context, id string) error {
	const q = `delete from project where id = $1;`
	ct, err := t.tx.Exec(ctx, q, id)
	if err != nil {
		return &domain.StorageError{Op: "delete project", Err: err}
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
