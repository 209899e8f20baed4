package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://fintrack.app/errors/validation"
	ErrorTypeNotFound    = "https://fintrack.app/errors/not-found"
	ErrorTypeUnavailable = "https://fintrack.app/errors/store-unavailable"
	ErrorTypeInternal    = "https://fintrack.app/errors/internal"
)

// DegradedHeader flags a read response whose data was replaced by an empty payload
const (
	DegradedHeader           = "X-Data-Degraded"
	DegradedStoreUnavailable = "store-unavailable"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates a store unavailable error response
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// validationFields maps field-level validation sentinels to their request field
var validationFields = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrInvalidAmount, "amount", "Amount must be a positive number below 1000000000000"},
	{domain.ErrDescriptionRequired, "description", "Description is required"},
	{domain.ErrDescriptionTooLong, "description", "Description must be 255 characters or less"},
	{domain.ErrInvalidTransactionType, "type", "Type must be one of: income, expense"},
	{domain.ErrInvalidCategory, "category", "Category does not belong to the transaction type"},
	{domain.ErrInvalidBudgetCategory, "category", "Budgets can only be set for expense categories"},
	{domain.ErrInvalidDate, "date", "Must be in YYYY-MM-DD format"},
	{domain.ErrInvalidMonth, "month", "Must be in YYYY-MM format"},
}

// writeError maps a service error to its problem response. Unavailable maps to 503.
func writeError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		for _, f := range validationFields {
			if errors.Is(err, f.err) {
				return NewValidationError(c, "Validation failed", []ValidationError{
					{Field: f.field, Message: f.message},
				})
			}
		}
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, capitalize(err.Error()))
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to " + action)
		return NewServiceUnavailableError(c, "Record store is unavailable, please retry later")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
