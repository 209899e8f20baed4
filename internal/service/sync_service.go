package service

import (
	"context"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
)

// SyncService exposes the change fingerprint polled by clients
type SyncService struct {
	syncRepo domain.SyncRepository
}

// NewSyncService creates a new SyncService
func NewSyncService(syncRepo domain.SyncRepository) *SyncService {
	return &SyncService{syncRepo: syncRepo}
}

// GetFingerprint returns the current record counts and last modification time
func (s *SyncService) GetFingerprint(ctx context.Context) (*domain.ChangeFingerprint, error) {
	return s.syncRepo.Fingerprint(ctx)
}
