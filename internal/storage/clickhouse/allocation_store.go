package clickhouse

import (
	"context"
	"fmt"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// AllocationStore implements storage.AllocationStore using ClickHouse.
// Allocation rows are append-only analytics data: one row per holder per run.
type AllocationStore struct {
	conn *Conn
}

// NewAllocationStore creates a new AllocationStore.
func NewAllocationStore(conn *Conn) *AllocationStore {
	return &AllocationStore{conn: conn}
}

// Compile-time interface check.
var _ storage.AllocationStore = (*AllocationStore)(nil)

// InsertBulk adds all rows of one run. Fails the entire batch on any
// duplicate (run_id, address).
func (s *AllocationStore) InsertBulk(ctx context.Context, rows []*domain.AllocationRow) error {
	if len(rows) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		runID   string
		address string
	}
	seen := make(map[key]struct{}, len(rows))
	for _, r := range rows {
		k := key{r.RunID, r.Address}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows. MergeTree does not
	// enforce uniqueness, so the store does.
	for _, r := range rows {
		exists, err := s.exists(ctx, r.RunID, r.Address)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO allocations (
			run_id, address, tokens, balance_weight, early_bonus, tenure_bonus,
			total_weight, hours_held, share, amount, generated_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.RunID, r.Address, r.Tokens,
			r.BalanceWeight, r.EarlyBonus, r.TenureBonus,
			r.TotalWeight, r.HoursHeld, r.Share, r.Amount,
			uint64(r.GeneratedAt),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all rows for a run, ordered by amount DESC, address ASC.
func (s *AllocationStore) GetByRunID(ctx context.Context, runID string) ([]*domain.AllocationRow, error) {
	query := `
		SELECT run_id, address, tokens, balance_weight, early_bonus, tenure_bonus,
		       total_weight, hours_held, share, amount, generated_at
		FROM allocations
		WHERE run_id = ?
		ORDER BY amount DESC, address ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	var result []*domain.AllocationRow
	for rows.Next() {
		var (
			r           domain.AllocationRow
			generatedAt uint64
		)
		err := rows.Scan(
			&r.RunID, &r.Address, &r.Tokens,
			&r.BalanceWeight, &r.EarlyBonus, &r.TenureBonus,
			&r.TotalWeight, &r.HoursHeld, &r.Share, &r.Amount,
			&generatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		r.GeneratedAt = int64(generatedAt)
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocations: %w", err)
	}
	return result, nil
}

// exists checks whether a (run_id, address) row is already stored.
func (s *AllocationStore) exists(ctx context.Context, runID, address string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM allocations WHERE run_id = ? AND address = ?`,
		runID, address,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
