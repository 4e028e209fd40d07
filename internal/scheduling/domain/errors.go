package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrRegionMismatch   = errors.New("project does not belong to this region")
)

// ValidationError names the offending required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// StorageError wraps a persistence failure; the unit of work it reports on
// was fully rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
