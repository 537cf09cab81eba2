package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedBands marks tax band or bracket tables that break the contiguity rules.
	ErrMalformedBands = errors.New("malformed band configuration")
	// ErrDuplicateBudget is returned when a user already budgets the category.
	ErrDuplicateBudget = errors.New("a budget already exists for this category")
	// ErrUnknownTaxYear is returned when a rules file has no entry for the requested year.
	ErrUnknownTaxYear = errors.New("unknown tax year")
)

// InvalidInputError indicates a value outside its documented domain.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input '%s': %s", e.Field, e.Message)
}

// NotFoundError indicates a record does not exist for the requesting user.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
