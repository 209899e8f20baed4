package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/db/sqlc"
	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	store
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *BudgetRepository {
	return &BudgetRepository{store: newStore(pool, queryTimeout)}
}

// Upsert inserts the budget for (category, month) or replaces its amount.
// Concurrent calls for the same key resolve inside the single statement.
func (r *BudgetRepository) Upsert(ctx context.Context, category, month string, amount decimal.Decimal) (*domain.Budget, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	pgAmount, err := decimalToPgNumeric(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	budget, err := r.queries.UpsertBudget(ctx, sqlc.UpsertBudgetParams{
		Category: category,
		Month:    month,
		Amount:   pgAmount,
	})
	if err != nil {
		return nil, storeError("upsert budget", err)
	}
	return sqlcBudgetToDomain(budget), nil
}

// ListByMonth returns every budget set for a month, ordered by category
func (r *BudgetRepository) ListByMonth(ctx context.Context, month string) ([]*domain.Budget, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.queries.ListBudgetsByMonth(ctx, month)
	if err != nil {
		return nil, storeError("list budgets", err)
	}

	budgets := make([]*domain.Budget, len(rows))
	for i, b := range rows {
		budgets[i] = sqlcBudgetToDomain(b)
	}
	return budgets, nil
}

func sqlcBudgetToDomain(b sqlc.Budget) *domain.Budget {
	return &domain.Budget{
		ID:        pgToUUID(b.ID),
		Category:  b.Category,
		Amount:    pgNumericToDecimal(b.Amount),
		Month:     b.Month,
		CreatedAt: b.CreatedAt.Time,
		UpdatedAt: b.UpdatedAt.Time,
	}
}
