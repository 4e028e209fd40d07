package postgres

import (
	"database/sql"
	"fmt"
	"log"
)

// Statements run in order and are all idempotent, so Migrate is safe to run
// on every deploy.
var schemaStatements = []string{
	`create table if not exists customer (
		id          bigserial primary key,
		name        text not null,
		first_name  text,
		last_name   text,
		phone       text not null,
		email       text,
		created_at  timestamptz not null default now()
	)`,
	`create index if not exists idx_customer_phone on customer (phone)`,

	`create table if not exists project (
		id              uuid primary key,
		date            date not null,
		po              text,
		address         text not null,
		city            text,
		subdivision     text,
		lot_number      text,
		square_footage  integer,
		job_cost_type   text,
		work_type       text,
		notes           text,
		region          text not null,
		customer_id     bigint not null references customer (id),
		created_at      timestamptz not null default now(),
		updated_at      timestamptz not null default now()
	)`,
	`create index if not exists idx_project_region on project (region)`,
	`create index if not exists idx_project_region_date on project (region, date)`,
	`create index if not exists idx_project_date on project (date)`,
	`create index if not exists idx_project_customer on project (customer_id)`,

	`create table if not exists users (
		id             bigserial primary key,
		username       text not null unique,
		email          text not null,
		password_hash  text not null,
		role           text not null,
		active         boolean not null default true,
		created_at     timestamptz not null default now()
	)`,

	`create table if not exists invitations (
		id          bigserial primary key,
		code        text not null unique,
		email       text not null,
		role        text not null,
		created_at  timestamptz not null default now(),
		expires_at  timestamptz not null,
		used        boolean not null default false,
		used_at     timestamptz
	)`,
	`create index if not exists idx_invitations_code on invitations (code)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i+1, err)
		}
	}
	log.Printf("[migrate] schema up to date (%d statements)", len(schemaStatements))
	return nil
}
