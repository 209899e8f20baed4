package service

import (
	"context"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/events"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	eventPublisher  events.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

// SetEventPublisher sets the change-event publisher
func (s *BudgetService) SetEventPublisher(publisher events.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBudget creates or replaces the budget for (category, month).
// The write is a single store upsert; there is no read-before-write.
func (s *BudgetService) SetBudget(ctx context.Context, category string, amount decimal.Decimal, month string) (*domain.Budget, error) {
	if !domain.IsValidCategory(domain.TransactionTypeExpense, category) {
		return nil, domain.ErrInvalidBudgetCategory
	}
	amount = amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThanOrEqual(maxAmount) {
		return nil, domain.ErrInvalidAmount
	}
	if !util.IsValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}

	budget, err := s.budgetRepo.Upsert(ctx, category, month, amount)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("budget_id", budget.ID.String()).
		Str("category", category).
		Str("month", month).
		Msg("Budget set")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ctx, events.BudgetUpserted(budget))
	}
	return budget, nil
}

// GetBudgets returns the budgets of a month; an empty month means the current one
func (s *BudgetService) GetBudgets(ctx context.Context, month string) ([]*domain.Budget, error) {
	month, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		budgets = []*domain.Budget{}
	}
	return budgets, nil
}

// GetBudgetProgress evaluates a month's budgets against that month's expenses
func (s *BudgetService) GetBudgetProgress(ctx context.Context, month string) (*domain.MonthlyBudgetProgress, error) {
	month, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	inMonth, err := FilterByMonth(transactions, month)
	if err != nil {
		return nil, err
	}
	summary, err := ComputeCategorySummary(inMonth)
	if err != nil {
		return nil, err
	}

	return SummarizeBudgets(month, EvaluateBudgets(budgets, summary)), nil
}

// resolveMonth defaults an empty month to the current one and validates the rest
func resolveMonth(month string) (string, error) {
	if month == "" {
		return util.CurrentMonth(), nil
	}
	if !util.IsValidMonth(month) {
		return "", domain.ErrInvalidMonth
	}
	return month, nil
}
