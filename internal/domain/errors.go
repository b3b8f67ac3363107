package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals a rejected client input.
	ErrValidation = errors.New("validation failed")
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("item not found")
	// ErrAlreadyFavorite signals a duplicate favorite edge.
	ErrAlreadyFavorite = errors.New("item already in favorites")
	// ErrNotFavorite signals a favorite edge that does not exist.
	ErrNotFavorite = errors.New("item not in favorites")
	// ErrCatalogUnavailable signals that the catalog store cannot be reached.
	// The query cache degrades silently; the catalog does not.
	ErrCatalogUnavailable = errors.New("catalog temporarily unavailable")
	// ErrIdentityRequired signals an operation that needs an authenticated requester.
	ErrIdentityRequired = errors.New("identity required")
)

// KeyPrefix namespaces every Redis key owned by this service.
const KeyPrefix = "pokedex:"

// ValidationError wraps ErrValidation with the offending field name,
// so clients learn which parameter to fix.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for a named field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
