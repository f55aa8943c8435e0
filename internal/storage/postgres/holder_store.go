package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// HolderStore implements storage.HolderStore using PostgreSQL.
type HolderStore struct {
	pool *Pool
}

// NewHolderStore creates a new HolderStore.
func NewHolderStore(pool *Pool) *HolderStore {
	return &HolderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.HolderStore = (*HolderStore)(nil)

// Insert adds a new holder. Returns ErrDuplicateKey if address exists.
func (s *HolderStore) Insert(ctx context.Context, h *domain.HolderRecord) error {
	query := `
		INSERT INTO holders (address, tokens, hours_after_launch)
		VALUES ($1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query, h.Address, h.Tokens, h.HoursAfterLaunch)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert holder: %w", err)
	}
	return nil
}

// GetByAddress retrieves a holder by address. Returns ErrNotFound if not exists.
func (s *HolderStore) GetByAddress(ctx context.Context, address string) (*domain.HolderRecord, error) {
	query := `
		SELECT address, tokens, hours_after_launch, created_at
		FROM holders
		WHERE address = $1
	`

	row := s.pool.QueryRow(ctx, query, address)
	h, err := scanHolder(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get holder by address: %w", err)
	}
	return h, nil
}

// GetAll retrieves all holders, ordered by created_at ASC, address ASC.
func (s *HolderStore) GetAll(ctx context.Context) ([]*domain.HolderRecord, error) {
	query := `
		SELECT address, tokens, hours_after_launch, created_at
		FROM holders
		ORDER BY created_at ASC, address ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all holders: %w", err)
	}
	defer rows.Close()

	return scanHolders(rows)
}

// Count returns the number of stored holders.
func (s *HolderStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM holders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count holders: %w", err)
	}
	return count, nil
}

// scanHolder scans a single holder from a row.
func scanHolder(row pgx.Row) (*domain.HolderRecord, error) {
	var h domain.HolderRecord
	err := row.Scan(&h.Address, &h.Tokens, &h.HoursAfterLaunch, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// scanHolders scans all holders from rows.
func scanHolders(rows pgx.Rows) ([]*domain.HolderRecord, error) {
	var result []*domain.HolderRecord
	for rows.Next() {
		h, err := scanHolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan holder: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holders: %w", err)
	}
	return result, nil
}
