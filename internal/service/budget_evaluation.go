package service

import (
	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	nearLimitFloor = decimal.NewFromInt(80)
)

// EvaluateBudgets joins each budget with the spend of its category.
// Categories missing from the summary count as zero spend.
func EvaluateBudgets(budgets []*domain.Budget, summary []domain.CategorySummary) []*domain.BudgetProgress {
	spentByCategory := make(map[string]decimal.Decimal, len(summary))
	for _, s := range summary {
		spentByCategory[s.Category] = s.Amount
	}

	progress := make([]*domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		spent, ok := spentByCategory[b.Category]
		if !ok {
			spent = decimal.Zero
		}
		progress = append(progress, evaluateBudget(b, spent))
	}
	return progress
}

func evaluateBudget(b *domain.Budget, spent decimal.Decimal) *domain.BudgetProgress {
	// Budget amounts are validated positive before they reach the store
	ratio := spent.Div(b.Amount).Mul(hundred)
	percentage := ratio.Round(2)
	over := spent.GreaterThan(b.Amount)

	remaining := b.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	display := percentage
	if display.GreaterThan(hundred) {
		display = hundred
	}
	if display.IsNegative() {
		display = decimal.Zero
	}

	return &domain.BudgetProgress{
		Budget:            b,
		Spent:             spent,
		Remaining:         remaining,
		Percentage:        percentage,
		DisplayPercentage: display,
		IsOverBudget:      over,
		IsNearLimit:       !over && ratio.GreaterThan(nearLimitFloor),
	}
}

// Alerts keeps the budgets that are over or near their limit
func Alerts(progress []*domain.BudgetProgress) []*domain.BudgetProgress {
	alerts := make([]*domain.BudgetProgress, 0)
	for _, p := range progress {
		if p.IsAlert() {
			alerts = append(alerts, p)
		}
	}
	return alerts
}

// SummarizeBudgets totals a month's evaluated budgets
func SummarizeBudgets(month string, progress []*domain.BudgetProgress) *domain.MonthlyBudgetProgress {
	result := &domain.MonthlyBudgetProgress{
		Month:          month,
		TotalBudgeted:  decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		Budgets:        progress,
	}
	for _, p := range progress {
		result.TotalBudgeted = result.TotalBudgeted.Add(p.Budget.Amount)
		result.TotalSpent = result.TotalSpent.Add(p.Spent)
		result.TotalRemaining = result.TotalRemaining.Add(p.Remaining)
	}
	return result
}
