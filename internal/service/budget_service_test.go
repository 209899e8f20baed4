package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/testutil"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBudgetService() (*BudgetService, *testutil.MockBudgetRepository, *testutil.MockTransactionRepository, *testutil.MockEventPublisher) {
	budgetRepo := testutil.NewMockBudgetRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewBudgetService(budgetRepo, transactionRepo)
	svc.SetEventPublisher(publisher)
	return svc, budgetRepo, transactionRepo, publisher
}

func TestSetBudget_Idempotent(t *testing.T) {
	svc, budgetRepo, _, publisher := newBudgetService()
	ctx := context.Background()
	amount := decimal.NewFromInt(300)

	first, err := svc.SetBudget(ctx, "Groceries", amount, "2024-01")
	require.NoError(t, err)
	second, err := svc.SetBudget(ctx, "Groceries", amount, "2024-01")
	require.NoError(t, err)

	assert.Len(t, budgetRepo.Budgets, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Amount.Equal(amount))
	assert.Equal(t, []string{"budget.upserted", "budget.upserted"}, publisher.Types())
}

func TestSetBudget_ReplacesAmount(t *testing.T) {
	svc, budgetRepo, _, _ := newBudgetService()
	ctx := context.Background()

	first, err := svc.SetBudget(ctx, "Travel", decimal.NewFromInt(100), "2024-01")
	require.NoError(t, err)
	updated, err := svc.SetBudget(ctx, "Travel", decimal.NewFromInt(250), "2024-01")
	require.NoError(t, err)

	assert.Len(t, budgetRepo.Budgets, 1)
	assert.Equal(t, "250.00", updated.Amount.StringFixed(2))
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	_, err = svc.SetBudget(ctx, "Travel", decimal.NewFromInt(80), "2024-02")
	require.NoError(t, err)
	assert.Len(t, budgetRepo.Budgets, 2)
}

func TestSetBudget_ConcurrentCallsKeepOneBudget(t *testing.T) {
	svc, budgetRepo, _, _ := newBudgetService()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = svc.SetBudget(context.Background(), "Shopping", decimal.NewFromInt(int64(n)), "2024-03")
		}(i)
	}
	wg.Wait()

	budgets, err := budgetRepo.ListByMonth(context.Background(), "2024-03")
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
}

func TestSetBudget_Validation(t *testing.T) {
	tests := []struct {
		name     string
		category string
		amount   decimal.Decimal
		month    string
		want     error
	}{
		{"income category", "Salary", decimal.NewFromInt(10), "2024-01", domain.ErrInvalidBudgetCategory},
		{"unknown category", "Pets", decimal.NewFromInt(10), "2024-01", domain.ErrInvalidBudgetCategory},
		{"zero amount", "Groceries", decimal.Zero, "2024-01", domain.ErrInvalidAmount},
		{"negative amount", "Groceries", decimal.NewFromInt(-1), "2024-01", domain.ErrInvalidAmount},
		{"bad month", "Groceries", decimal.NewFromInt(10), "2024-1", domain.ErrInvalidMonth},
		{"empty month", "Groceries", decimal.NewFromInt(10), "", domain.ErrInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, budgetRepo, _, _ := newBudgetService()

			_, err := svc.SetBudget(context.Background(), tt.category, tt.amount, tt.month)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, budgetRepo.UpsertCalls)
		})
	}
}

func TestGetBudgets(t *testing.T) {
	svc, budgetRepo, _, _ := newBudgetService()
	budgetRepo.AddBudget("Travel", "2024-01", decimal.NewFromInt(100))
	budgetRepo.AddBudget("Groceries", "2024-01", decimal.NewFromInt(200))
	budgetRepo.AddBudget("Groceries", util.CurrentMonth(), decimal.NewFromInt(300))

	budgets, err := svc.GetBudgets(context.Background(), "2024-01")
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "Groceries", budgets[0].Category)

	current, err := svc.GetBudgets(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "300.00", current[0].Amount.StringFixed(2))

	_, err = svc.GetBudgets(context.Background(), "January")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestGetBudgetProgress_UsesOnlyThatMonthsSpend(t *testing.T) {
	svc, budgetRepo, transactionRepo, _ := newBudgetService()
	budgetRepo.AddBudget("Groceries", "2024-01", decimal.NewFromInt(100))
	budgetRepo.AddBudget("Travel", "2024-01", decimal.NewFromInt(500))
	transactionRepo.AddTransaction(expense("70", "Groceries", "2024-01-03"))
	transactionRepo.AddTransaction(expense("50", "Groceries", "2024-01-20"))
	transactionRepo.AddTransaction(expense("400", "Groceries", "2024-02-01"))
	transactionRepo.AddTransaction(income("1000", "Salary", "2024-01-01"))

	result, err := svc.GetBudgetProgress(context.Background(), "2024-01")
	require.NoError(t, err)

	require.Len(t, result.Budgets, 2)
	groceries := result.Budgets[0]
	assert.Equal(t, "Groceries", groceries.Budget.Category)
	assert.Equal(t, "120.00", groceries.Spent.StringFixed(2))
	assert.True(t, groceries.IsOverBudget)
	assert.Equal(t, "100.00", groceries.DisplayPercentage.StringFixed(2))

	travel := result.Budgets[1]
	assert.True(t, travel.Spent.IsZero())
	assert.Equal(t, "600.00", result.TotalBudgeted.StringFixed(2))
	assert.Equal(t, "120.00", result.TotalSpent.StringFixed(2))
	assert.Equal(t, "500.00", result.TotalRemaining.StringFixed(2))
}

func TestGetBudgetProgress_Errors(t *testing.T) {
	svc, budgetRepo, transactionRepo, _ := newBudgetService()
	budgetRepo.AddBudget("Groceries", "2024-01", decimal.NewFromInt(100))

	transactionRepo.AddTransaction(expense("10", "Groceries", "not-a-date"))
	_, err := svc.GetBudgetProgress(context.Background(), "2024-01")
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)

	budgetRepo.Err = fmt.Errorf("list budgets: %w", domain.ErrStoreUnavailable)
	_, err = svc.GetBudgetProgress(context.Background(), "2024-01")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
