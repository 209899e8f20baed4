package service

import (
	"fmt"
	"strings"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SpendingTrend compares the expenses of the last two months in monthly.
// It returns nil with fewer than two months of data. PercentChange stays nil
// when the previous month had no expenses.
func SpendingTrend(monthly []domain.MonthlyData) *domain.SpendingTrend {
	if len(monthly) < 2 {
		return nil
	}

	current := monthly[len(monthly)-1]
	previous := monthly[len(monthly)-2]
	change := current.Expenses.Sub(previous.Expenses)

	trend := &domain.SpendingTrend{
		CurrentMonth:  current.Month,
		PreviousMonth: previous.Month,
		Change:        change,
		IsIncrease:    change.IsPositive(),
	}
	if !previous.Expenses.IsZero() {
		pct := change.Div(previous.Expenses).Mul(hundred).Round(2)
		trend.PercentChange = &pct
	}
	return trend
}

// TopCategory returns the highest spending category with its share of total spend
func TopCategory(summary []domain.CategorySummary) *domain.TopCategory {
	if len(summary) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, s := range summary {
		total = total.Add(s.Amount)
	}

	top := &domain.TopCategory{CategorySummary: summary[0], ShareOfTotal: decimal.Zero}
	if !total.IsZero() {
		top.ShareOfTotal = summary[0].Amount.Div(total).Mul(hundred).Round(2)
	}
	return top
}

// AverageTransactionValue is total spend divided by the number of expense transactions
func AverageTransactionValue(summary []domain.CategorySummary) decimal.Decimal {
	total := decimal.Zero
	count := 0
	for _, s := range summary {
		total = total.Add(s.Amount)
		count += s.Count
	}
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// Recommendations derives the textual tips shown alongside the insights
func Recommendations(trend *domain.SpendingTrend, top *domain.TopCategory, alerts []*domain.BudgetProgress, budgetCount int, average, threshold decimal.Decimal) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, 3)

	if trend != nil && trend.IsIncrease {
		msg := fmt.Sprintf("Your expenses increased by %s compared to %s.", trend.Change.StringFixed(2), trend.PreviousMonth)
		if trend.PercentChange != nil {
			msg = fmt.Sprintf("Your expenses increased by %s%% this month.", trend.PercentChange.StringFixed(1))
		}
		if top != nil {
			msg += fmt.Sprintf(" Consider reviewing your %s spending.", strings.ToLower(top.Category))
		}
		recs = append(recs, domain.Recommendation{
			Kind:    domain.RecommendationSpendingIncrease,
			Title:   "Spending Increase Detected",
			Message: msg,
		})
	}

	if len(alerts) == 0 && budgetCount > 0 {
		recs = append(recs, domain.Recommendation{
			Kind:    domain.RecommendationBudgetsOnTrack,
			Title:   "Great Budget Management!",
			Message: "You're staying within your budgets across all categories. Keep up the good work!",
		})
	}

	if average.GreaterThan(threshold) {
		recs = append(recs, domain.Recommendation{
			Kind:    domain.RecommendationHighAverageTransaction,
			Title:   "High Average Transaction",
			Message: fmt.Sprintf("Your average transaction is %s. Consider tracking smaller purchases to get a complete picture.", average.StringFixed(2)),
		})
	}

	return recs
}
