package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a spending cap for one expense category in one calendar month.
// (Category, Month) is unique in the store.
type Budget struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     string          `json:"month"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BudgetProgress is the evaluation of one budget against the month's spend
type BudgetProgress struct {
	Budget            *Budget         `json:"budget"`
	Spent             decimal.Decimal `json:"spent"`
	Remaining         decimal.Decimal `json:"remaining"`
	Percentage        decimal.Decimal `json:"percentage"`
	DisplayPercentage decimal.Decimal `json:"displayPercentage"`
	IsOverBudget      bool            `json:"isOverBudget"`
	IsNearLimit       bool            `json:"isNearLimit"`
}

// IsAlert reports whether the progress should be surfaced as a budget alert
func (p *BudgetProgress) IsAlert() bool {
	return p.IsOverBudget || p.IsNearLimit
}

// MonthlyBudgetProgress groups the evaluation of every budget set for a month
type MonthlyBudgetProgress struct {
	Month          string            `json:"month"`
	TotalBudgeted  decimal.Decimal   `json:"totalBudgeted"`
	TotalSpent     decimal.Decimal   `json:"totalSpent"`
	TotalRemaining decimal.Decimal   `json:"totalRemaining"`
	Budgets        []*BudgetProgress `json:"budgets"`
}

type BudgetRepository interface {
	// Upsert inserts or replaces the budget for (category, month) in a single store operation
	Upsert(ctx context.Context, category, month string, amount decimal.Decimal) (*Budget, error)
	ListByMonth(ctx context.Context, month string) ([]*Budget, error)
}
