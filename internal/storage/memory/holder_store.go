package memory

import (
	"context"
	"sort"
	"sync"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// HolderStore is an in-memory implementation of storage.HolderStore.
type HolderStore struct {
	mu   sync.RWMutex
	data map[string]*domain.HolderRecord // keyed by address
}

// NewHolderStore creates a new in-memory holder store.
func NewHolderStore() *HolderStore {
	return &HolderStore{
		data: make(map[string]*domain.HolderRecord),
	}
}

// Compile-time interface check.
var _ storage.HolderStore = (*HolderStore)(nil)

// Insert adds a new holder. Returns ErrDuplicateKey if address exists.
func (s *HolderStore) Insert(_ context.Context, h *domain.HolderRecord) error {
	if h == nil || h.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[h.Address]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	holderCopy := *h
	s.data[h.Address] = &holderCopy
	return nil
}

// GetByAddress retrieves a holder by address. Returns ErrNotFound if not exists.
func (s *HolderStore) GetByAddress(_ context.Context, address string) (*domain.HolderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, exists := s.data[address]
	if !exists {
		return nil, storage.ErrNotFound
	}

	holderCopy := *h
	return &holderCopy, nil
}

// GetAll retrieves all holders, ordered by created_at ASC, address ASC.
func (s *HolderStore) GetAll(_ context.Context) ([]*domain.HolderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.HolderRecord, 0, len(s.data))
	for _, h := range s.data {
		holderCopy := *h
		result = append(result, &holderCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].Address < result[j].Address
	})

	return result, nil
}

// Count returns the number of stored holders.
func (s *HolderStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data), nil
}
