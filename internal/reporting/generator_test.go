package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
	"solana-rewards-lab/internal/storage/memory"
)

func seedRun(t *testing.T, runStore storage.DistributionRunStore, allocStore storage.AllocationStore) {
	t.Helper()
	ctx := context.Background()

	run := &domain.DistributionRun{
		RunID:            "run-1",
		MinBalance:       20000,
		MaxBalance:       1e9,
		TreasuryTotal:    10,
		FeeReserve:       0.05,
		HoursSinceLaunch: 48,
		HolderCount:      3,
		AllocationCount:  2,
		TotalWeight:      5.0,
		TotalDistributed: 9.5,
		GeneratedAt:      1700000000000,
	}
	require.NoError(t, runStore.Insert(ctx, run))

	rows := []*domain.AllocationRow{
		{
			RunID: "run-1", Address: "addr-small",
			Tokens: 20000, BalanceWeight: 1.0, EarlyBonus: 1.0, TenureBonus: 1.5,
			TotalWeight: 1.5, HoursHeld: 10, Share: 0.3, Amount: 2.85,
			GeneratedAt: 1700000000000,
		},
		{
			RunID: "run-1", Address: "addr-big",
			Tokens: 200000, BalanceWeight: 2.0, EarlyBonus: 1.0, TenureBonus: 1.75,
			TotalWeight: 3.5, HoursHeld: 40, Share: 0.7, Amount: 6.65,
			GeneratedAt: 1700000000000,
		},
	}
	require.NoError(t, allocStore.InsertBulk(ctx, rows))
}

func TestGenerator_Generate(t *testing.T) {
	runStore := memory.NewDistributionRunStore()
	allocStore := memory.NewAllocationStore()
	seedRun(t, runStore, allocStore)

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := NewGenerator(runStore, allocStore).
		WithClock(func() time.Time { return fixed })

	report, err := gen.Generate(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 20000.0, report.Params.MinBalance)
	assert.Equal(t, 3, report.HolderCount)
	assert.Equal(t, 2, report.AllocationCount)
	assert.Equal(t, 9.5, report.TotalDistributed)

	require.Len(t, report.Allocations, 2)
	assert.Equal(t, "addr-big", report.Allocations[0].Address)
	assert.Equal(t, "addr-small", report.Allocations[1].Address)

	assert.InDelta(t, 2.5, report.AvgWeight, 1e-9)
	assert.InDelta(t, 4.75, report.AvgAmount, 1e-9)

	require.NotNil(t, report.TopByAmount)
	assert.Equal(t, "addr-big", report.TopByAmount.Address)
	assert.Equal(t, "addr-small", report.BottomByAmount.Address)
	assert.Equal(t, "addr-big", report.TopByWeight.Address)
	assert.Equal(t, "addr-small", report.BottomByWeight.Address)

	assert.InDelta(t, 70.0, report.Allocations[0].SharePct, 1e-9)
}

func TestGenerator_GenerateUnknownRun(t *testing.T) {
	gen := NewGenerator(memory.NewDistributionRunStore(), memory.NewAllocationStore())

	_, err := gen.Generate(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCompose_EmptyRun(t *testing.T) {
	run := &domain.DistributionRun{
		RunID:            "run-empty",
		MinBalance:       100,
		MaxBalance:       1000,
		TreasuryTotal:    10,
		HoursSinceLaunch: 1,
		GeneratedAt:      1000,
	}

	report := Compose(run, nil, time.Unix(0, 0).UTC())

	assert.Empty(t, report.Allocations)
	assert.Zero(t, report.AvgWeight)
	assert.Zero(t, report.AvgAmount)
	assert.Nil(t, report.TopByAmount)
	assert.Nil(t, report.BottomByWeight)
}

func TestRenderMarkdown(t *testing.T) {
	runStore := memory.NewDistributionRunStore()
	allocStore := memory.NewAllocationStore()
	seedRun(t, runStore, allocStore)

	gen := NewGenerator(runStore, allocStore).
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) })

	report, err := gen.Generate(context.Background(), "run-1")
	require.NoError(t, err)

	md := RenderMarkdown(report)

	assert.Contains(t, md, "# Distribution Report")
	assert.Contains(t, md, "Run: run-1")
	assert.Contains(t, md, "Generated: 2024-06-01T12:00:00Z")
	assert.Contains(t, md, "## Parameters")
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "## Extremes")
	assert.Contains(t, md, "## Allocations")
	assert.Contains(t, md, "addr-big")
	assert.Contains(t, md, "addr-small")

	// Top allocation is listed before the bottom one
	assert.Less(t, strings.Index(md, "| addr-big |"), strings.Index(md, "| addr-small |"))
}

func TestRenderMarkdown_NoAllocations(t *testing.T) {
	run := &domain.DistributionRun{RunID: "run-empty", MinBalance: 100, MaxBalance: 1000}
	report := Compose(run, nil, time.Unix(0, 0).UTC())

	md := RenderMarkdown(report)

	assert.Contains(t, md, "No allocations in this run.")
	assert.Contains(t, md, "No allocations available.")
}

func TestRenderCSV(t *testing.T) {
	lines := []AllocationLine{
		{
			Address: "addr-big", Tokens: 200000,
			BalanceWeight: 2.0, EarlyBonus: 1.0, TenureBonus: 1.75,
			TotalWeight: 3.5, HoursHeld: 40, Share: 0.7, SharePct: 70, Amount: 6.65,
		},
		{
			Address: "addr-small", Tokens: 20000,
			BalanceWeight: 1.0, EarlyBonus: 1.0, TenureBonus: 1.5,
			TotalWeight: 1.5, HoursHeld: 10, Share: 0.3, SharePct: 30, Amount: 2.85,
		},
	}

	csv := RenderCSV(lines)
	rows := strings.Split(strings.TrimSpace(csv), "\n")

	require.Len(t, rows, 3)
	assert.Equal(t, "address,tokens,balance_weight,early_bonus,tenure_bonus,total_weight,hours_held,share,share_pct,amount", rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "addr-big,"))
	assert.True(t, strings.HasPrefix(rows[2], "addr-small,"))
}

func TestRenderCSV_Empty(t *testing.T) {
	csv := RenderCSV(nil)
	rows := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, rows, 1)
}
