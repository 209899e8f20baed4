package service

import (
	"context"
	"strings"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/events"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxAmount is the first value that no longer fits NUMERIC(14,2)
var maxAmount = decimal.New(1, 12)

// TransactionDeletedPayload is the event payload of a removed transaction
type TransactionDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	eventPublisher  events.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// SetEventPublisher sets the change-event publisher
func (s *TransactionService) SetEventPublisher(publisher events.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ctx, event)
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        string
	Type        domain.TransactionType
}

// CreateTransaction validates the input and stores a new transaction
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	transaction := &domain.Transaction{
		Amount:      input.Amount.Round(2),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Date:        input.Date,
		Type:        input.Type,
	}
	if err := validateTransaction(transaction); err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TransactionCreated(created))
	return created, nil
}

// GetTransaction retrieves a single transaction
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// ListTransactions returns one page of transactions, newest first.
// page starts at 1; limit falls back to the default and is capped at MaxPageSize.
func (s *TransactionService) ListTransactions(ctx context.Context, page, limit int32) (*domain.PaginatedTransactions, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	transactions, err := s.transactionRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}

	return &domain.PaginatedTransactions{
		Data:    transactions,
		Page:    page,
		Limit:   limit,
		HasMore: int32(len(transactions)) == limit,
	}, nil
}

// UpdateTransaction applies a partial update. The merged record must satisfy
// the same rules as a new transaction, so a type change must come with a
// category from the new type's set. The whole merged record is written so a
// concurrent update can never leave a type paired with the other type's category.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	if data == nil || data.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	existing, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if data.Amount != nil {
		merged.Amount = data.Amount.Round(2)
	}
	if data.Description != nil {
		merged.Description = strings.TrimSpace(*data.Description)
	}
	if data.Category != nil {
		merged.Category = *data.Category
	}
	if data.Date != nil {
		merged.Date = *data.Date
	}
	if data.Type != nil {
		merged.Type = *data.Type
	}
	if err := validateTransaction(&merged); err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(ctx, &merged)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction hard-deletes a transaction
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("transaction_id", id.String()).Msg("Transaction deleted")
	s.publishEvent(ctx, events.TransactionDeleted(TransactionDeletedPayload{ID: id}))
	return nil
}

func validateTransaction(t *domain.Transaction) error {
	if !t.Amount.IsPositive() || t.Amount.GreaterThanOrEqual(maxAmount) {
		return domain.ErrInvalidAmount
	}
	if t.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(t.Description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if !t.Type.Valid() {
		return domain.ErrInvalidTransactionType
	}
	if !domain.IsValidCategory(t.Type, t.Category) {
		return domain.ErrInvalidCategory
	}
	if _, err := util.ParseDate(t.Date); err != nil {
		return domain.ErrInvalidDate
	}
	return nil
}
