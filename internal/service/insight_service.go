package service

import (
	"context"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// InsightService derives the insight report of a month
type InsightService struct {
	transactionRepo      domain.TransactionRepository
	budgetRepo           domain.BudgetRepository
	highAverageThreshold decimal.Decimal
}

// NewInsightService creates a new InsightService
func NewInsightService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository, highAverageThreshold decimal.Decimal) *InsightService {
	return &InsightService{
		transactionRepo:      transactionRepo,
		budgetRepo:           budgetRepo,
		highAverageThreshold: highAverageThreshold,
	}
}

// GetInsights builds the report for month (current month when empty).
// The trend compares the last two months with data up to and including month;
// the category figures and budget alerts are scoped to month itself.
func (s *InsightService) GetInsights(ctx context.Context, month string) (*domain.Insights, error) {
	month, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}

	var (
		transactions []*domain.Transaction
		budgets      []*domain.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgetRepo.ListByMonth(gctx, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthly, err := ComputeMonthlySummary(transactions)
	if err != nil {
		return nil, err
	}
	upTo := len(monthly)
	for upTo > 0 && monthly[upTo-1].Month > month {
		upTo--
	}

	inMonth, err := FilterByMonth(transactions, month)
	if err != nil {
		return nil, err
	}
	summary, err := ComputeCategorySummary(inMonth)
	if err != nil {
		return nil, err
	}

	trend := SpendingTrend(monthly[:upTo])
	top := TopCategory(summary)
	average := AverageTransactionValue(summary)
	alerts := Alerts(EvaluateBudgets(budgets, summary))

	return &domain.Insights{
		Month:                   month,
		SpendingTrend:           trend,
		TopCategory:             top,
		AverageTransactionValue: average,
		BudgetAlerts:            alerts,
		BudgetCount:             len(budgets),
		Recommendations:         Recommendations(trend, top, alerts, len(budgets), average, s.highAverageThreshold),
	}, nil
}
