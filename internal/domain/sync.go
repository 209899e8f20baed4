package domain

import (
	"context"
	"time"
)

// ChangeFingerprint summarises the store contents so polling clients can
// detect changes without refetching every collection.
type ChangeFingerprint struct {
	TransactionCount int64      `json:"transactionCount"`
	BudgetCount      int64      `json:"budgetCount"`
	LastModified     *time.Time `json:"lastModified"`
}

type SyncRepository interface {
	Fingerprint(ctx context.Context) (*ChangeFingerprint, error)
}
