package types

import (
	"fmt"
)

// ValidationError reports a request that does not match its endpoint schema.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that no row of Entity has the given ID.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StoreError wraps any failure of the persistence layer that is not a
// missing row: constraint violations, connectivity, decoding.
type StoreError struct {
	Op         string
	Code       string
	Constraint string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: %v (constraint %s)", e.Op, e.Err, e.Constraint)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

const (
	EntityClient     = "cliente"
	EntityAsset      = "ativo"
	EntityAllocation = "alocacao"
)
