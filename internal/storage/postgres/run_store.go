package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// DistributionRunStore implements storage.DistributionRunStore using PostgreSQL.
type DistributionRunStore struct {
	pool *Pool
}

// NewDistributionRunStore creates a new DistributionRunStore.
func NewDistributionRunStore(pool *Pool) *DistributionRunStore {
	return &DistributionRunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.DistributionRunStore = (*DistributionRunStore)(nil)

// Insert adds a completed run. Returns ErrDuplicateKey if run_id exists.
func (s *DistributionRunStore) Insert(ctx context.Context, r *domain.DistributionRun) error {
	query := `
		INSERT INTO distribution_runs (
			run_id, min_balance, max_balance, treasury_total, fee_reserve,
			hours_since_launch, holder_count, allocation_count,
			total_weight, total_distributed, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.pool.Exec(ctx, query,
		r.RunID,
		r.MinBalance,
		r.MaxBalance,
		r.TreasuryTotal,
		r.FeeReserve,
		r.HoursSinceLaunch,
		r.HolderCount,
		r.AllocationCount,
		r.TotalWeight,
		r.TotalDistributed,
		r.GeneratedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert distribution run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *DistributionRunStore) GetByID(ctx context.Context, runID string) (*domain.DistributionRun, error) {
	query := selectRuns + ` WHERE run_id = $1`

	row := s.pool.QueryRow(ctx, query, runID)
	r, err := scanRun(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get run by id: %w", err)
	}
	return r, nil
}

// GetAll retrieves all runs, ordered by generated_at ASC, run_id ASC.
func (s *DistributionRunStore) GetAll(ctx context.Context) ([]*domain.DistributionRun, error) {
	query := selectRuns + ` ORDER BY generated_at ASC, run_id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all runs: %w", err)
	}
	defer rows.Close()

	var result []*domain.DistributionRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return result, nil
}

const selectRuns = `
	SELECT run_id, min_balance, max_balance, treasury_total, fee_reserve,
	       hours_since_launch, holder_count, allocation_count,
	       total_weight, total_distributed, generated_at, created_at
	FROM distribution_runs
`

// scanRun scans a single run from a row.
func scanRun(row pgx.Row) (*domain.DistributionRun, error) {
	var r domain.DistributionRun
	err := row.Scan(
		&r.RunID,
		&r.MinBalance,
		&r.MaxBalance,
		&r.TreasuryTotal,
		&r.FeeReserve,
		&r.HoursSinceLaunch,
		&r.HolderCount,
		&r.AllocationCount,
		&r.TotalWeight,
		&r.TotalDistributed,
		&r.GeneratedAt,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
