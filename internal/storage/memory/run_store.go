package memory

import (
	"context"
	"sort"
	"sync"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// DistributionRunStore is an in-memory implementation of storage.DistributionRunStore.
type DistributionRunStore struct {
	mu   sync.RWMutex
	data map[string]*domain.DistributionRun // keyed by run_id
}

// NewDistributionRunStore creates a new in-memory run store.
func NewDistributionRunStore() *DistributionRunStore {
	return &DistributionRunStore{
		data: make(map[string]*domain.DistributionRun),
	}
}

// Compile-time interface check.
var _ storage.DistributionRunStore = (*DistributionRunStore)(nil)

// Insert adds a completed run. Returns ErrDuplicateKey if run_id exists.
func (s *DistributionRunStore) Insert(_ context.Context, r *domain.DistributionRun) error {
	if r == nil || r.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	runCopy := *r
	s.data[r.RunID] = &runCopy
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *DistributionRunStore) GetByID(_ context.Context, runID string) (*domain.DistributionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	runCopy := *r
	return &runCopy, nil
}

// GetAll retrieves all runs, ordered by generated_at ASC, run_id ASC.
func (s *DistributionRunStore) GetAll(_ context.Context) ([]*domain.DistributionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.DistributionRun, 0, len(s.data))
	for _, r := range s.data {
		runCopy := *r
		result = append(result, &runCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].GeneratedAt != result[j].GeneratedAt {
			return result[i].GeneratedAt < result[j].GeneratedAt
		}
		return result[i].RunID < result[j].RunID
	})

	return result, nil
}
