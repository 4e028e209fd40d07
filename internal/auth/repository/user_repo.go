package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savageut/scheduler-backend/internal/auth/domain"
)

// UserStore is the persistence boundary for users and invitations.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error

	CreateInvitation(ctx context.Context, inv *domain.Invitation) error
	GetInvitationByCode(ctx context.Context, code string) (*domain.Invitation, error)
	MarkInvitationUsed(ctx context.Context, id int64, usedAt time.Time) error
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ UserStore = (*UserRepository)(nil)

const userCols = `id, username, email, password_hash, role, active`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `select ` + userCols + ` from users where username = $1;`
	return scanUser(r.db.QueryRow(ctx, q, username))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `select ` + userCols + ` from users where id = $1;`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
insert into users (username, email, password_hash, role, active)
values ($1, $2, $3, $4, $5)
returning id;
`
	err := r.db.QueryRow(ctx, q, u.Username, u.Email, u.PasswordHash, u.Role, u.Active).Scan(&u.ID)

	// unique violation on username/email
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const q = `select ` + userCols + ` from users order by username;`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, 16)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Active); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const q = `update users set active = $2 where id = $1;`
	ct, err := r.db.Exec(ctx, q, id, active)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CreateInvitation(ctx context.Context, inv *domain.Invitation) error {
	const q = `
insert into invitations (code, email, role, expires_at)
values ($1, $2, $3, $4)
returning id, created_at;
`
	return r.db.QueryRow(ctx, q, inv.Code, inv.Email, inv.Role, inv.ExpiresAt).
		Scan(&inv.ID, &inv.CreatedAt)
}

func (r *UserRepository) GetInvitationByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	const q = `
select id, code, email, role, created_at, expires_at, used, used_at
from invitations
where code = $1;
`
	var inv domain.Invitation
	err := r.db.QueryRow(ctx, q, code).Scan(
		&inv.ID, &inv.Code, &inv.Email, &inv.Role,
		&inv.CreatedAt, &inv.ExpiresAt, &inv.Used, &inv.UsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvitationInvalid
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *UserRepository) MarkInvitationUsed(ctx context.Context, id int64, usedAt time.Time) error {
	const q = `update invitations set used = true, used_at = $2 where id = $1;`
	_, err := r.db.Exec(ctx, q, id, usedAt)
	return err
}
