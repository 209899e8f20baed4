package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesForType(t *testing.T) {
	assert.Equal(t, IncomeCategories, CategoriesForType(TransactionTypeIncome))
	assert.Equal(t, ExpenseCategories, CategoriesForType(TransactionTypeExpense))
	assert.Nil(t, CategoriesForType(TransactionType("transfer")))
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		txType   TransactionType
		category string
		want     bool
	}{
		{TransactionTypeExpense, "Groceries", true},
		{TransactionTypeExpense, "Salary", false},
		{TransactionTypeIncome, "Salary", true},
		{TransactionTypeIncome, "Groceries", false},
		{TransactionTypeIncome, "Other", true},
		{TransactionTypeExpense, "Other", true},
		{TransactionTypeExpense, "groceries", false},
		{TransactionType("transfer"), "Other", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType)+"/"+tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCategory(tt.txType, tt.category))
		})
	}
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionTypeIncome.Valid())
	assert.True(t, TransactionTypeExpense.Valid())
	assert.False(t, TransactionType("").Valid())
	assert.False(t, TransactionType("Income").Valid())
}

func TestUpdateTransactionDataIsEmpty(t *testing.T) {
	assert.True(t, (&UpdateTransactionData{}).IsEmpty())

	desc := "Rent"
	assert.False(t, (&UpdateTransactionData{Description: &desc}).IsEmpty())
}
