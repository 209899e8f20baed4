package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	validation := []error{
		ErrInvalidAmount,
		ErrDescriptionRequired,
		ErrDescriptionTooLong,
		ErrInvalidTransactionType,
		ErrInvalidCategory,
		ErrInvalidBudgetCategory,
		ErrInvalidDate,
		ErrInvalidMonth,
		ErrEmptyUpdate,
	}
	for _, err := range validation {
		assert.ErrorIs(t, err, ErrValidation, err.Error())
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
	}

	assert.ErrorIs(t, ErrTransactionNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrTransactionNotFound, ErrValidation)
}

func TestErrorTaxonomy_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("list budgets: %w: %w", ErrStoreUnavailable, errors.New("connection reset by peer"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrDataIntegrity)

	wrapped := fmt.Errorf("update transaction: %w", ErrTransactionNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}
