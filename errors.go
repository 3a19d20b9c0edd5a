package tracker

import (
	"errors"
	"fmt"
)

// Operations are rejected with an error wrapping one of these. A rejected
// operation has not changed any collection.
var (
	// ErrValidation reports an invalid input: bad amount, missing field,
	// inverted dates or an unknown reference.
	ErrValidation = errors.New("invalid input")
	// ErrReferenced reports a deletion, or a type change, of a record still in use.
	ErrReferenced = errors.New("record in use")
	// ErrRule reports a business rule violation.
	ErrRule = errors.New("rule violation")
	// ErrNotFound reports an unknown record id.
	ErrNotFound = errors.New("not found")
	// ErrImport reports a malformed import document.
	ErrImport = errors.New("invalid import document")

	ErrSameAccount       = fmt.Errorf("%w: cannot transfer to the same account", ErrRule)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient balance", ErrRule)
	ErrBudgetOverlap     = fmt.Errorf("%w: overlapping budget for this category", ErrRule)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
