package postgres

import (
	"context"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SyncRepository implements domain.SyncRepository using PostgreSQL
type SyncRepository struct {
	store
}

// NewSyncRepository creates a new SyncRepository
func NewSyncRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *SyncRepository {
	return &SyncRepository{store: newStore(pool, queryTimeout)}
}

// Fingerprint returns record counts and the latest modification time across both collections
func (r *SyncRepository) Fingerprint(ctx context.Context) (*domain.ChangeFingerprint, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row, err := r.queries.GetChangeFingerprint(ctx)
	if err != nil {
		return nil, storeError("change fingerprint", err)
	}
	return &domain.ChangeFingerprint{
		TransactionCount: row.TransactionCount,
		BudgetCount:      row.BudgetCount,
		LastModified:     optionalTime(row.LastModified),
	}, nil
}
