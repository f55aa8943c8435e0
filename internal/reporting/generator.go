package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/storage"
)

// Generator produces reports from stored runs.
type Generator struct {
	runStore        storage.DistributionRunStore
	allocationStore storage.AllocationStore
	now             func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(runStore storage.DistributionRunStore, allocStore storage.AllocationStore) *Generator {
	return &Generator{
		runStore:        runStore,
		allocationStore: allocStore,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate loads a stored run and its allocations and builds a report.
func (g *Generator) Generate(ctx context.Context, runID string) (*Report, error) {
	run, err := g.runStore.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	rows, err := g.allocationStore.GetByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load allocations for run %s: %w", runID, err)
	}

	return Compose(run, rows, g.now()), nil
}

// Compose builds a report from an in-memory run and its allocation rows.
// Used directly by one-shot runs that have not persisted anything.
func Compose(run *domain.DistributionRun, rows []*domain.AllocationRow, at time.Time) *Report {
	r := &Report{
		GeneratedAt:      at,
		RunID:            run.RunID,
		Params:           run.Params(),
		HolderCount:      run.HolderCount,
		AllocationCount:  run.AllocationCount,
		TotalWeight:      run.TotalWeight,
		TotalDistributed: run.TotalDistributed,
	}

	if len(rows) == 0 {
		return r
	}

	lines := make([]AllocationLine, len(rows))
	for i, row := range rows {
		lines[i] = lineFromRow(row)
	}
	sortLines(lines)
	r.Allocations = lines

	var weightSum, amountSum float64
	for i := range lines {
		weightSum += lines[i].TotalWeight
		amountSum += lines[i].Amount
	}
	n := float64(len(lines))
	r.AvgWeight = weightSum / n
	r.AvgAmount = amountSum / n

	// Lines are already sorted by amount
	r.TopByAmount = &lines[0]
	r.BottomByAmount = &lines[len(lines)-1]

	topW, bottomW := &lines[0], &lines[0]
	for i := range lines {
		if lines[i].TotalWeight > topW.TotalWeight {
			topW = &lines[i]
		}
		if lines[i].TotalWeight < bottomW.TotalWeight {
			bottomW = &lines[i]
		}
	}
	r.TopByWeight = topW
	r.BottomByWeight = bottomW

	return r
}

// sortLines orders by amount descending, address ascending on ties.
func sortLines(lines []AllocationLine) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Amount != lines[j].Amount {
			return lines[i].Amount > lines[j].Amount
		}
		return lines[i].Address < lines[j].Address
	})
}
