// Package domain holds the entities of the parking system and the error
// kinds callers branch on. Handlers translate the sentinel errors into HTTP
// status codes: ErrInvalidRequest is a 400, ErrConflict a 409,
// ErrInsufficientFunds a 402 and ErrNotFound a 404. Collaborator I/O
// failures are wrapped in PersistenceError so they are never confused with
// a validation outcome.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned for malformed input: a non-positive
	// duration, a missing reference, or a space that is not free.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflict is returned when an operation is attempted against state
	// that forbids it, such as extending an already ended reservation or
	// reserving with a vehicle that is already parked.
	ErrConflict = errors.New("conflict")

	// ErrInsufficientFunds is returned when a charge would drive a payer's
	// balance negative. The charge is rejected in full.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)

// PersistenceError wraps a storage-layer failure. The mutation must be
// treated as not applied unless the repository confirmed it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// WrapPersistence returns err wrapped as a PersistenceError, or nil.
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
