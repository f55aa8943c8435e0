package memory

import (
	"context"
	"errors"
	"testing"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

func TestHolderStore_InsertAndGet(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	h := &domain.HolderRecord{
		Address:          "addr-1",
		Tokens:           20000,
		HoursAfterLaunch: 6,
		CreatedAt:        1704067200000,
	}

	if err := store.Insert(ctx, h); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAddress(ctx, "addr-1")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}

	if got.Address != h.Address {
		t.Errorf("Address mismatch: got %s, want %s", got.Address, h.Address)
	}
	if got.Tokens != h.Tokens {
		t.Errorf("Tokens mismatch: got %v, want %v", got.Tokens, h.Tokens)
	}
	if got.HoursAfterLaunch != h.HoursAfterLaunch {
		t.Errorf("HoursAfterLaunch mismatch: got %v, want %v", got.HoursAfterLaunch, h.HoursAfterLaunch)
	}
}

func TestHolderStore_DuplicateKey(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	h := &domain.HolderRecord{Address: "addr-1", Tokens: 20000}

	if err := store.Insert(ctx, h); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, h)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestHolderStore_GetByAddressNotFound(t *testing.T) {
	store := NewHolderStore()

	_, err := store.GetByAddress(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestHolderStore_GetAllOrdered(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	records := []*domain.HolderRecord{
		{Address: "addr-b", Tokens: 1, CreatedAt: 2000},
		{Address: "addr-c", Tokens: 2, CreatedAt: 1000},
		{Address: "addr-a", Tokens: 3, CreatedAt: 2000},
	}
	for _, r := range records {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	want := []string{"addr-c", "addr-a", "addr-b"}
	if len(all) != len(want) {
		t.Fatalf("Expected %d holders, got %d", len(want), len(all))
	}
	for i, r := range all {
		if r.Address != want[i] {
			t.Errorf("Position %d: got %s, want %s", i, r.Address, want[i])
		}
	}
}

func TestHolderStore_Count(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	n, err := store.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Expected empty store, got %d (%v)", n, err)
	}

	if err := store.Insert(ctx, &domain.HolderRecord{Address: "addr-1"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, &domain.HolderRecord{Address: "addr-2"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	n, err = store.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("Expected 2 holders, got %d (%v)", n, err)
	}
}

func TestHolderStore_ReturnsCopies(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	if err := store.Insert(ctx, &domain.HolderRecord{Address: "addr-1", Tokens: 100}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAddress(ctx, "addr-1")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	got.Tokens = 999

	again, err := store.GetByAddress(ctx, "addr-1")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	if again.Tokens != 100 {
		t.Errorf("Store leaked a mutable reference: got %v", again.Tokens)
	}
}
