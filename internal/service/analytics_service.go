package service

import (
	"context"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
)

// AnalyticsService serves the dashboard aggregates
type AnalyticsService struct {
	transactionRepo domain.TransactionRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(transactionRepo domain.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{transactionRepo: transactionRepo}
}

// GetAnalytics computes the monthly trend over every month with data and the
// category breakdown. The breakdown covers all time unless month is given.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, month string) (*domain.Analytics, error) {
	if month != "" && !util.IsValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}

	transactions, err := s.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := ComputeMonthlySummary(transactions)
	if err != nil {
		return nil, err
	}

	scoped := transactions
	if month != "" {
		if scoped, err = FilterByMonth(transactions, month); err != nil {
			return nil, err
		}
	}
	categories, err := ComputeCategorySummary(scoped)
	if err != nil {
		return nil, err
	}

	return &domain.Analytics{
		MonthlyData:  monthly,
		CategoryData: categories,
	}, nil
}
