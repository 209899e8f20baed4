package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers map these with errors.Is, so every specific error
// wraps exactly one of the four roots below.
var (
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrDataIntegrity    = errors.New("data integrity violation")
)

// Not found errors
var (
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
)

// Validation errors
var (
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrDescriptionRequired    = fmt.Errorf("%w: description is required", ErrValidation)
	ErrDescriptionTooLong     = fmt.Errorf("%w: description exceeds maximum length", ErrValidation)
	ErrInvalidTransactionType = fmt.Errorf("%w: type must be one of: income, expense", ErrValidation)
	ErrInvalidCategory        = fmt.Errorf("%w: category does not belong to the transaction type", ErrValidation)
	ErrInvalidBudgetCategory  = fmt.Errorf("%w: budgets can only be set for expense categories", ErrValidation)
	ErrInvalidDate            = fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	ErrInvalidMonth           = fmt.Errorf("%w: month must be in YYYY-MM format", ErrValidation)
	ErrEmptyUpdate            = fmt.Errorf("%w: no fields to update", ErrValidation)
)

// Validation constants
const (
	MaxDescriptionLength = 255
)
