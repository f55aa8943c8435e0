package rewards

import (
	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/idhash"
)

// RunResult bundles everything one distribution run produces.
type RunResult struct {
	Run         *domain.DistributionRun
	Allocations []*domain.AllocationResult
	Rows        []*domain.AllocationRow
	Stats       *domain.DistributionStats

	// DustFiltered counts eligible holders whose amount fell below
	// DustThreshold and was dropped.
	DustFiltered int
}

// ExecuteRun performs a full distribution over the given holder records:
// weight computation, share allocation, dust filtering and statistics.
// generatedAt is a Unix millisecond timestamp identifying the run.
func ExecuteRun(records []*domain.HolderRecord, params domain.RunParams, generatedAt int64) (*RunResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	holders := make([]*domain.Holder, len(records))
	addresses := make([]string, len(records))
	for i, rec := range records {
		holders[i] = domain.NewHolder(rec, params)
		addresses[i] = rec.Address
	}

	allocs, err := Distribute(holders, params.TreasuryTotal, params.FeeReserve)
	if err != nil {
		return nil, err
	}

	stats := Summarize(holders, allocs)

	eligible := 0
	for _, h := range holders {
		if h.Tokens >= params.MinBalance && h.Tokens <= params.MaxBalance {
			eligible++
		}
	}
	dustFiltered := 0
	if eligible > len(allocs) {
		dustFiltered = eligible - len(allocs)
	}

	runID := idhash.ComputeRunID(params, generatedAt, addresses)

	rows := make([]*domain.AllocationRow, len(allocs))
	for i, a := range allocs {
		rows[i] = domain.NewAllocationRow(runID, a, generatedAt)
	}

	run := &domain.DistributionRun{
		RunID:            runID,
		MinBalance:       params.MinBalance,
		MaxBalance:       params.MaxBalance,
		TreasuryTotal:    params.TreasuryTotal,
		FeeReserve:       params.FeeReserve,
		HoursSinceLaunch: params.HoursSinceLaunch,
		HolderCount:      len(records),
		AllocationCount:  len(allocs),
		TotalWeight:      stats.TotalWeight,
		TotalDistributed: stats.TotalDistributed,
		GeneratedAt:      generatedAt,
	}

	return &RunResult{
		Run:          run,
		Allocations:  allocs,
		Rows:         rows,
		Stats:        stats,
		DustFiltered: dustFiltered,
	}, nil
}
