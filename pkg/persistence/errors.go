package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrCardNotFound indicates a card was not found by name or identifier.
	ErrCardNotFound = errors.New("card not found")

	// ErrDeckNotFound indicates a deck was not found by the given identifier.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckAlreadyExists indicates a deck with the same name already exists.
	ErrDeckAlreadyExists = errors.New("deck already exists")

	// ErrUserResourcesNotFound indicates no resource record exists for the user.
	ErrUserResourcesNotFound = errors.New("user resources not found")
)

// CardError wraps card-related errors with operation context.
type CardError struct {
	Op   string // Operation being performed (e.g. "ResolveByName", "Save")
	Card string // Card name or ID if applicable
	Err  error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("%s operation failed for card %s: %v", e.Op, e.Card, e.Err)
}

func (e *CardError) Unwrap() error {
	return e.Err
}

func (e *CardError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewCardError creates a new card error with context.
func NewCardError(op, card string, err error) *CardError {
	return &CardError{Op: op, Card: card, Err: err}
}

// DeckError wraps deck-related errors with operation context.
type DeckError struct {
	Op     string
	DeckID string
	Err    error
}

func (e *DeckError) Error() string {
	return fmt.Sprintf("%s operation failed for deck %s: %v", e.Op, e.DeckID, e.Err)
}

func (e *DeckError) Unwrap() error {
	return e.Err
}

func (e *DeckError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewDeckError creates a new deck error with context.
func NewDeckError(op, deckID string, err error) *DeckError {
	return &DeckError{Op: op, DeckID: deckID, Err: err}
}

// IsCardNotFound checks if an error indicates a card was not found.
func IsCardNotFound(err error) bool {
	return errors.Is(err, ErrCardNotFound)
}

// IsDeckNotFound checks if an error indicates a deck was not found.
func IsDeckNotFound(err error) bool {
	return errors.Is(err, ErrDeckNotFound)
}

// IsDeckAlreadyExists checks if an error indicates a duplicate deck name.
func IsDeckAlreadyExists(err error) bool {
	return errors.Is(err, ErrDeckAlreadyExists)
}

// IsUserResourcesNotFound checks if an error indicates missing resources.
func IsUserResourcesNotFound(err error) bool {
	return errors.Is(err, ErrUserResourcesNotFound)
}
