package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/db/sqlc"
	"github.com/dafibh/fintrack/fintrack-backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds the shared connection pool. It does not dial; call Ping to
// verify the store is reachable.
func NewPool(ctx context.Context, cfg config.StoreConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, storeError("create pool", err)
	}
	return pool, nil
}

// Ping checks the store within the connect timeout
func Ping(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return storeError("ping", pool.Ping(ctx))
}

// store bundles the generated queries with the per-query timeout shared by every repository
type store struct {
	queries      *sqlc.Queries
	queryTimeout time.Duration
}

func newStore(db sqlc.DBTX, queryTimeout time.Duration) store {
	return store{queries: sqlc.New(db), queryTimeout: queryTimeout}
}

func (s store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
