package domain

// ExpenseCategories is the closed set of categories an expense may use
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Groceries",
	"Other",
}

// IncomeCategories is the closed set of categories an income may use
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment",
	"Business",
	"Gift",
	"Refund",
	"Bonus",
	"Commission",
	"Rental Income",
	"Other",
}

// CategoriesForType returns the category set matching a transaction type
func CategoriesForType(t TransactionType) []string {
	switch t {
	case TransactionTypeIncome:
		return IncomeCategories
	case TransactionTypeExpense:
		return ExpenseCategories
	}
	return nil
}

// IsValidCategory reports whether category belongs to the set for t
func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesForType(t) {
		if c == category {
			return true
		}
	}
	return false
}
