package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/db/sqlc"
	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	store
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *TransactionRepository {
	return &TransactionRepository{store: newStore(pool, queryTimeout)}
}

// Create inserts a transaction; id and timestamps are assigned by the store
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	created, err := r.queries.CreateTransaction(ctx, sqlc.CreateTransactionParams{
		Amount:      amount,
		Description: transaction.Description,
		Category:    transaction.Category,
		Date:        transaction.Date,
		Type:        string(transaction.Type),
	})
	if err != nil {
		return nil, storeError("create transaction", err)
	}
	return sqlcTransactionToDomain(created), nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	transaction, err := r.queries.GetTransactionByID(ctx, uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, storeError("get transaction", err)
	}
	return sqlcTransactionToDomain(transaction), nil
}

// List returns one page of transactions, newest date first
func (r *TransactionRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.queries.ListTransactions(ctx, sqlc.ListTransactionsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, storeError("list transactions", err)
	}
	return sqlcTransactionsToDomain(rows), nil
}

// ListAll returns every stored transaction
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.queries.ListAllTransactions(ctx)
	if err != nil {
		return nil, storeError("list all transactions", err)
	}
	return sqlcTransactionsToDomain(rows), nil
}

// Update overwrites every field of the stored row with transaction and refreshes updated_at
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	updated, err := r.queries.UpdateTransaction(ctx, sqlc.UpdateTransactionParams{
		ID:          uuidToPg(transaction.ID),
		Amount:      amount,
		Description: transaction.Description,
		Category:    transaction.Category,
		Date:        transaction.Date,
		Type:        string(transaction.Type),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, storeError("update transaction", err)
	}
	return sqlcTransactionToDomain(updated), nil
}

// Delete hard-deletes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	affected, err := r.queries.DeleteTransaction(ctx, uuidToPg(id))
	if err != nil {
		return storeError("delete transaction", err)
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func sqlcTransactionsToDomain(rows []sqlc.Transaction) []*domain.Transaction {
	result := make([]*domain.Transaction, len(rows))
	for i, t := range rows {
		result[i] = sqlcTransactionToDomain(t)
	}
	return result
}

func sqlcTransactionToDomain(t sqlc.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:          pgToUUID(t.ID),
		Amount:      pgNumericToDecimal(t.Amount),
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
		Type:        domain.TransactionType(t.Type),
		CreatedAt:   t.CreatedAt.Time,
		UpdatedAt:   t.UpdatedAt.Time,
	}
}
