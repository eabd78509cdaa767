// Package services provides the business logic layer between the HTTP
// handlers and the persistence and workflow packages.
package services

import (
	"errors"
	"fmt"

	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidColor    = errors.New("invalid color symbol")
	ErrInvalidLimit    = errors.New("invalid limit")
	ErrDeckNameQty     = errors.New("deck name is required")
	ErrCardNameQty     = errors.New("card name is required")
	ErrEmptyUserID     = errors.New("user ID cannot be empty")
	ErrNegativeBalance = errors.New("resource balances cannot be negative")

	// Not Found (404).
	ErrCardNotFound          = persistence.ErrCardNotFound
	ErrDeckNotFound          = persistence.ErrDeckNotFound
	ErrUserResourcesNotFound = persistence.ErrUserResourcesNotFound

	// Business Logic Conflicts (409 Conflict).
	ErrDeckAlreadyExists = persistence.ErrDeckAlreadyExists
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidColor) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrDeckNameQty) ||
		errors.Is(err, ErrCardNameQty) ||
		errors.Is(err, ErrEmptyUserID) ||
		errors.Is(err, ErrNegativeBalance)
}

// IsNotFoundError checks if an error indicates a missing record (HTTP 404).
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrDeckNotFound) ||
		errors.Is(err, ErrUserResourcesNotFound)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDeckAlreadyExists)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
