package memory

import (
	"context"
	"sort"
	"sync"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// AllocationStore is an in-memory implementation of storage.AllocationStore.
type AllocationStore struct {
	mu   sync.RWMutex
	data map[allocationKey]*domain.AllocationRow
}

type allocationKey struct {
	runID   string
	address string
}

// NewAllocationStore creates a new in-memory allocation store.
func NewAllocationStore() *AllocationStore {
	return &AllocationStore{
		data: make(map[allocationKey]*domain.AllocationRow),
	}
}

// Compile-time interface check.
var _ storage.AllocationStore = (*AllocationStore)(nil)

// InsertBulk adds all rows of one run. Fails the entire batch on any
// duplicate (run_id, address), leaving the store unchanged.
func (s *AllocationStore) InsertBulk(_ context.Context, rows []*domain.AllocationRow) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check for intra-batch and store duplicates before writing anything
	seen := make(map[allocationKey]struct{}, len(rows))
	for _, row := range rows {
		if row == nil || row.RunID == "" || row.Address == "" {
			return storage.ErrInvalidInput
		}
		k := allocationKey{row.RunID, row.Address}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, row := range rows {
		rowCopy := *row
		s.data[allocationKey{row.RunID, row.Address}] = &rowCopy
	}
	return nil
}

// GetByRunID retrieves all rows for a run, ordered by amount DESC, address ASC.
func (s *AllocationStore) GetByRunID(_ context.Context, runID string) ([]*domain.AllocationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AllocationRow
	for k, row := range s.data {
		if k.runID == runID {
			rowCopy := *row
			result = append(result, &rowCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Address < result[j].Address
	})

	return result, nil
}
