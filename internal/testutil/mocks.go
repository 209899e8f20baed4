package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository.
// Err, when set, is returned by every method.
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions map[uuid.UUID]*domain.Transaction
	Err          error
	CreateFn     func(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	UpdateFn     func(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	ListAllFn    func(ctx context.Context) ([]*domain.Transaction, error)
	UpdateCalls  int
	DeleteCalls  int
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// AddTransaction stores a transaction as-is, assigning an id and timestamps when missing
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) *domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
		transaction.UpdatedAt = transaction.CreatedAt
	}
	m.Transactions[transaction.ID] = transaction
	return transaction
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.CreateFn != nil {
		return m.CreateFn(ctx, transaction)
	}
	transaction.ID = uuid.Nil
	transaction.CreatedAt = time.Time{}
	return m.AddTransaction(transaction), nil
}

// GetByID retrieves a transaction by its ID
func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	transaction, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

// List returns one page ordered by date desc, created_at desc
func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.sorted()
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date > all[j].Date
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if int(offset) >= len(all) {
		return []*domain.Transaction{}, nil
	}
	end := int(offset) + int(limit)
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ListAll returns every transaction ordered by date asc
func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return m.sorted(), nil
}

// Update replaces the stored transaction with the given record
func (m *MockTransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	m.UpdateCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Transactions[transaction.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	stored := *transaction
	stored.UpdatedAt = time.Now()
	m.Transactions[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

func (m *MockTransactionRepository) sorted() []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*domain.Transaction, 0, len(m.Transactions))
	for _, t := range m.Transactions {
		all = append(all, t)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository.
// Budgets are keyed on (category, month) like the store's unique constraint.
type MockBudgetRepository struct {
	mu          sync.Mutex
	Budgets     map[string]*domain.Budget
	Err         error
	UpsertCalls int
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[string]*domain.Budget),
	}
}

func budgetKey(category, month string) string {
	return month + "|" + category
}

// AddBudget stores a budget for test setup
func (m *MockBudgetRepository) AddBudget(category, month string, amount decimal.Decimal) *domain.Budget {
	budget, _ := m.upsert(category, month, amount)
	return budget
}

// Upsert inserts or replaces the budget for (category, month)
func (m *MockBudgetRepository) Upsert(ctx context.Context, category, month string, amount decimal.Decimal) (*domain.Budget, error) {
	m.mu.Lock()
	m.UpsertCalls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.upsert(category, month, amount)
}

func (m *MockBudgetRepository) upsert(category, month string, amount decimal.Decimal) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	key := budgetKey(category, month)
	if existing, ok := m.Budgets[key]; ok {
		existing.Amount = amount
		existing.UpdatedAt = now
		copied := *existing
		return &copied, nil
	}

	budget := &domain.Budget{
		ID:        uuid.New(),
		Category:  category,
		Amount:    amount,
		Month:     month,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.Budgets[key] = budget
	copied := *budget
	return &copied, nil
}

// ListByMonth returns the month's budgets ordered by category
func (m *MockBudgetRepository) ListByMonth(ctx context.Context, month string) ([]*domain.Budget, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	budgets := []*domain.Budget{}
	for _, b := range m.Budgets {
		if b.Month == month {
			copied := *b
			budgets = append(budgets, &copied)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Category < budgets[j].Category })
	return budgets, nil
}

// MockSyncRepository is a mock implementation of domain.SyncRepository
type MockSyncRepository struct {
	Result *domain.ChangeFingerprint
	Err    error
}

// NewMockSyncRepository creates a new MockSyncRepository
func NewMockSyncRepository() *MockSyncRepository {
	return &MockSyncRepository{Result: &domain.ChangeFingerprint{}}
}

// Fingerprint returns the configured fingerprint
func (m *MockSyncRepository) Fingerprint(ctx context.Context) (*domain.ChangeFingerprint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// MockEventPublisher records every published event
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []events.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the recorded event types in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}
