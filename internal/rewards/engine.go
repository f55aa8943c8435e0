package rewards

import (
	"fmt"

	"solana-rewards-lab/internal/domain"
)

// DustThreshold is the minimum amount an allocation must reach to be
// returned. Smaller amounts are dropped deliberately, which can leave the
// returned share sum below 1.
const DustThreshold = 1e-6

// Distribute allocates treasuryTotal*(1-feeReserve) proportionally to the
// weights of eligible holders. Eligibility is qualification (balance >= the
// holder's min balance) combined with the max-balance ceiling. The returned
// slice preserves the input traversal order; an empty result is a valid
// "nothing to distribute" outcome, not an error.
func Distribute(holders []*domain.Holder, treasuryTotal, feeReserve float64) ([]*domain.AllocationResult, error) {
	if !isFinite(treasuryTotal) || treasuryTotal < 0 {
		return nil, fmt.Errorf("treasury total %v must be finite and non-negative: %w",
			treasuryTotal, domain.ErrInvalidParams)
	}
	if !isFinite(feeReserve) || feeReserve < 0 || feeReserve >= 1 {
		return nil, fmt.Errorf("fee reserve %v must be in [0, 1): %w",
			feeReserve, domain.ErrInvalidParams)
	}

	// Addresses must be unique within one run. Deduplication is a caller
	// concern; ambiguous input is refused rather than silently merged.
	seen := make(map[string]struct{}, len(holders))
	for _, h := range holders {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[h.Address]; dup {
			return nil, fmt.Errorf("duplicate holder address %s: %w",
				h.Address, domain.ErrInvalidHolder)
		}
		seen[h.Address] = struct{}{}
	}

	// Weigh every holder, keep the eligible ones.
	type weighted struct {
		holder *domain.Holder
		weight domain.WeightResult
	}
	eligible := make([]weighted, 0, len(holders))
	for _, h := range holders {
		w, err := ComputeWeight(h.Tokens, h.HoursAfterLaunch, h.HoursSinceLaunch, h.MinBalance)
		if err != nil {
			return nil, err
		}
		if !w.Qualified || h.Tokens > h.MaxBalance {
			continue
		}
		eligible = append(eligible, weighted{holder: h, weight: w})
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	// Every eligible holder has totalWeight > 0 (balanceWeight >= 1,
	// earlyBonus > 1, tenureBonus >= 1), so the sum is positive here.
	totalWeightage := 0.0
	for _, e := range eligible {
		totalWeightage += e.weight.TotalWeight
	}

	available := treasuryTotal * (1 - feeReserve)

	results := make([]*domain.AllocationResult, 0, len(eligible))
	for _, e := range eligible {
		share := e.weight.TotalWeight / totalWeightage
		amount := available * share
		if amount < DustThreshold {
			continue
		}
		results = append(results, &domain.AllocationResult{
			Address:  e.holder.Address,
			Tokens:   e.holder.Tokens,
			Weight:   e.weight,
			Share:    share,
			SharePct: share * 100,
			Amount:   amount,
		})
	}
	return results, nil
}
