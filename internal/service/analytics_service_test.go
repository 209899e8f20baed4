package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalytics_AllTime(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	svc := NewAnalyticsService(repo)
	repo.AddTransaction(expense("50", "Food & Dining", "2024-01-05"))
	repo.AddTransaction(expense("30", "Food & Dining", "2024-01-20"))
	repo.AddTransaction(income("1000", "Salary", "2024-01-01"))
	repo.AddTransaction(expense("200", "Travel", "2024-02-14"))

	result, err := svc.GetAnalytics(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, result.MonthlyData, 2)
	assert.Equal(t, "2024-01", result.MonthlyData[0].Month)
	assert.Equal(t, "920.00", result.MonthlyData[0].Net.StringFixed(2))
	assert.Equal(t, "-200.00", result.MonthlyData[1].Net.StringFixed(2))

	require.Len(t, result.CategoryData, 2)
	assert.Equal(t, "Travel", result.CategoryData[0].Category)
	assert.Equal(t, "Food & Dining", result.CategoryData[1].Category)
}

func TestGetAnalytics_MonthScopedCategories(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	svc := NewAnalyticsService(repo)
	repo.AddTransaction(expense("50", "Food & Dining", "2024-01-05"))
	repo.AddTransaction(expense("200", "Travel", "2024-02-14"))

	result, err := svc.GetAnalytics(context.Background(), "2024-01")
	require.NoError(t, err)

	assert.Len(t, result.MonthlyData, 2)
	require.Len(t, result.CategoryData, 1)
	assert.Equal(t, "Food & Dining", result.CategoryData[0].Category)
}

func TestGetAnalytics_Empty(t *testing.T) {
	svc := NewAnalyticsService(testutil.NewMockTransactionRepository())

	result, err := svc.GetAnalytics(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, result.MonthlyData)
	assert.NotNil(t, result.CategoryData)
	assert.Empty(t, result.MonthlyData)
	assert.Empty(t, result.CategoryData)
}

func TestGetAnalytics_Errors(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	svc := NewAnalyticsService(repo)

	_, err := svc.GetAnalytics(context.Background(), "2024/01")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	repo.AddTransaction(expense("50", "Food & Dining", "2024-01-32"))
	_, err = svc.GetAnalytics(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)

	repo.Err = fmt.Errorf("list all transactions: %w", domain.ErrStoreUnavailable)
	result, err := svc.GetAnalytics(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, result, "no zeroed result may be fabricated")
}
