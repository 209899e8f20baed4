package db

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MigrationWorker applies the schema once the store becomes reachable. It
// retries on every tick until one migration run succeeds, then exits.
type MigrationWorker struct {
	ping     func(ctx context.Context) error
	migrate  func() (uint, error)
	logger   zerolog.Logger
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	mu       sync.Mutex
	running  bool
	applied  bool
}

// NewMigrationWorker creates a worker that pings with ping and migrates with migrate
func NewMigrationWorker(ping func(ctx context.Context) error, migrate func() (uint, error), logger zerolog.Logger, interval time.Duration) *MigrationWorker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &MigrationWorker{
		ping:     ping,
		migrate:  migrate,
		logger:   logger.With().Str("component", "migration_worker").Logger(),
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Applied reports whether a migration run has succeeded
func (w *MigrationWorker) Applied() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.applied
}

// TryOnce pings the store and, when it answers, applies pending migrations.
// It returns true once the schema is up to date.
func (w *MigrationWorker) TryOnce(ctx context.Context) bool {
	if w.Applied() {
		return true
	}
	if err := w.ping(ctx); err != nil {
		w.logger.Debug().Err(err).Msg("Store still unreachable, migrations pending")
		return false
	}

	version, err := w.migrate()
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to run migrations")
		return false
	}

	w.mu.Lock()
	w.applied = true
	w.mu.Unlock()
	w.logger.Info().Uint("version", version).Msg("Database schema up to date")
	return true
}

// Start runs TryOnce immediately and then on every tick until it succeeds
func (w *MigrationWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop waits for the background loop to exit
func (w *MigrationWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	select {
	case <-w.doneCh:
	default:
		close(w.stopCh)
		<-w.doneCh
	}
}

func (w *MigrationWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if w.TryOnce(ctx) {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.TryOnce(ctx) {
				return
			}
		}
	}
}
