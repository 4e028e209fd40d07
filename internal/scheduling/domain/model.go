package domain

import "time"

// Customer is an identity record. Phone is the matching key during project
// writes; a customer whose name changes gets a fresh record instead of an
// in-place rewrite so old projects keep their historical snapshot.
type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

// Project is one scheduled job: one date, one region, one customer.
type Project struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	PO            string    `json:"po,omitempty"`
	Address       string    `json:"address"`
	City          string    `json:"city,omitempty"`
	Subdivision   string    `json:"subdivision,omitempty"`
	LotNumber     string    `json:"lot_number,omitempty"`
	SquareFootage int       `json:"square_footage,omitempty"`
	JobCostType   string    `json:"-"` // encoded tag list, see tags.go
	WorkType      string    `json:"-"` // encoded tag list
	Notes         string    `json:"notes,omitempty"`
	Region        string    `json:"region"`
	CustomerID    int64     `json:"customer_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectInput is the field set accepted from callers for create and update.
type ProjectInput struct {
	Date          string   `json:"date"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	CustomerEmail string   `json:"customer_email"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Subdivision   string   `json:"subdivision"`
	LotNumber     string   `json:"lot_number"`
	SquareFootage int      `json:"square_footage"`
	JobCostType   []string `json:"job_cost_type"`
	WorkType      []string `json:"work_type"`
	Notes         string   `json:"notes"`
	PO            string   `json:"po"`
}

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event describes a committed project mutation. It carries the post-commit
// snapshot handed to hooks (export, notifications, cache invalidation).
type Event struct {
	Type     EventType
	Project  Project
	Customer Customer
}
