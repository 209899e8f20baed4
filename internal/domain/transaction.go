package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DateLayout is the calendar date format stored on every transaction
const DateLayout = "2006-01-02"

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UpdateTransactionData holds a partial update; nil fields are left untouched
type UpdateTransactionData struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *string
	Type        *TransactionType
}

// IsEmpty reports whether the update carries no fields
func (u *UpdateTransactionData) IsEmpty() bool {
	return u.Amount == nil && u.Description == nil && u.Category == nil && u.Date == nil && u.Type == nil
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data    []*Transaction `json:"transactions"`
	Page    int32          `json:"page"`
	Limit   int32          `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, limit, offset int32) ([]*Transaction, error)
	ListAll(ctx context.Context) ([]*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
