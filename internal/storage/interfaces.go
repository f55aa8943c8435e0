package storage

import (
	"context"

	"solana-rewards-lab/internal/domain"
)

// HolderStore provides access to holders storage.
type HolderStore interface {
	// Insert adds a new holder. Returns ErrDuplicateKey if address exists.
	Insert(ctx context.Context, h *domain.HolderRecord) error

	// GetByAddress retrieves a holder by address. Returns ErrNotFound if not exists.
	GetByAddress(ctx context.Context, address string) (*domain.HolderRecord, error)

	// GetAll retrieves all holders, ordered by created_at ASC, address ASC.
	GetAll(ctx context.Context) ([]*domain.HolderRecord, error)

	// Count returns the number of stored holders.
	Count(ctx context.Context) (int, error)
}

// DistributionRunStore provides access to distribution_runs storage.
type DistributionRunStore interface {
	// Insert adds a completed run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, r *domain.DistributionRun) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.DistributionRun, error)

	// GetAll retrieves all runs, ordered by generated_at ASC, run_id ASC.
	GetAll(ctx context.Context) ([]*domain.DistributionRun, error)
}

// AllocationStore provides access to per-run allocation rows.
type AllocationStore interface {
	// InsertBulk adds all rows of one run. Fails the entire batch on any
	// duplicate (run_id, address).
	InsertBulk(ctx context.Context, rows []*domain.AllocationRow) error

	// GetByRunID retrieves all rows for a run, ordered by amount DESC, address ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.AllocationRow, error)
}
