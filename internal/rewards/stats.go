package rewards

import "solana-rewards-lab/internal/domain"

// Summarize computes summary statistics over one run's inputs and outputs.
//
// The qualified subset uses the min-balance check alone, without the
// max-balance ceiling, so it can be larger than the set that received an
// allocation. Averages are 0 when the allocation list is empty, since an
// empty list is a valid upstream outcome. Inputs are not mutated.
func Summarize(holders []*domain.Holder, allocs []*domain.AllocationResult) *domain.DistributionStats {
	stats := &domain.DistributionStats{
		TotalHolders: len(holders),
	}

	for _, h := range holders {
		if h.Tokens >= h.MinBalance {
			stats.QualifiedCount++
			stats.QualifiedTokens += h.Tokens
		}
	}

	for _, a := range allocs {
		stats.TotalWeight += a.Weight.TotalWeight
		stats.TotalDistributed += a.Amount

		if stats.TopByWeight == nil || a.Weight.TotalWeight > stats.TopByWeight.Weight.TotalWeight {
			stats.TopByWeight = a
		}
		if stats.TopByAmount == nil || a.Amount > stats.TopByAmount.Amount {
			stats.TopByAmount = a
		}
		if stats.BottomByWeight == nil || a.Weight.TotalWeight < stats.BottomByWeight.Weight.TotalWeight {
			stats.BottomByWeight = a
		}
		if stats.BottomByAmount == nil || a.Amount < stats.BottomByAmount.Amount {
			stats.BottomByAmount = a
		}
	}

	if len(allocs) > 0 {
		stats.AvgWeight = stats.TotalWeight / float64(len(allocs))
		stats.AvgReward = stats.TotalDistributed / float64(len(allocs))
	}

	return stats
}
