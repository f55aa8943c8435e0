// Package rewards implements the holder reward distribution core:
// per-holder weight scoring, proportional allocation of a reward pool,
// and summary statistics. All functions are pure and deterministic.
package rewards

import (
	"fmt"
	"math"

	"solana-rewards-lab/internal/domain"
)

// ComputeWeight scores a single holder from four scalar inputs.
//
// A balance below minBalance disqualifies the holder: the result has all
// weight fields at zero and Qualified=false, with a nil error. That is the
// only disqualification path here; the max-balance ceiling is applied by
// the caller. Malformed input returns a typed error instead of a zeroed
// result, so configuration defects never masquerade as disqualification.
func ComputeWeight(tokenBalance, hoursAfterLaunch, hoursSinceLaunch, minBalance float64) (domain.WeightResult, error) {
	if err := validateWeightInput(tokenBalance, hoursAfterLaunch, hoursSinceLaunch, minBalance); err != nil {
		return domain.WeightResult{}, err
	}

	if tokenBalance < minBalance {
		return domain.WeightResult{Qualified: false}, nil
	}

	hoursHeld := hoursSinceLaunch - hoursAfterLaunch
	daysSinceLaunch := hoursAfterLaunch / 24
	daysHeld := hoursHeld / 24

	// Logarithmic damping of large balances. Exactly 1 at the boundary,
	// since log10(1) = 0.
	balanceWeight := 1 + math.Log10(tokenBalance/minBalance)

	// 3 at launch, decaying toward 1 with a two-day half-life scale.
	earlyBonus := 1 + 2*math.Exp(-daysSinceLaunch/2)

	// 1 at zero days held, growing with each doubling of tenure.
	tenureBonus := 1 + 0.6*math.Log2(daysHeld+1)

	timeWeight := earlyBonus * tenureBonus

	return domain.WeightResult{
		BalanceWeight: balanceWeight,
		EarlyBonus:    earlyBonus,
		TenureBonus:   tenureBonus,
		TimeWeight:    timeWeight,
		TotalWeight:   balanceWeight * timeWeight,
		HoursHeld:     hoursHeld,
		Qualified:     true,
	}, nil
}

// validateWeightInput rejects inputs outside the documented domain.
func validateWeightInput(tokenBalance, hoursAfterLaunch, hoursSinceLaunch, minBalance float64) error {
	if !isFinite(tokenBalance) || tokenBalance < 0 {
		return fmt.Errorf("token balance %v must be finite and non-negative: %w",
			tokenBalance, domain.ErrInvalidHolder)
	}
	if !isFinite(hoursAfterLaunch) || hoursAfterLaunch < 0 {
		return fmt.Errorf("hours after launch %v must be finite and non-negative: %w",
			hoursAfterLaunch, domain.ErrInvalidHolder)
	}
	if !isFinite(hoursSinceLaunch) || hoursSinceLaunch < 0 {
		return fmt.Errorf("hours since launch %v must be finite and non-negative: %w",
			hoursSinceLaunch, domain.ErrInvalidHolder)
	}
	if hoursAfterLaunch > hoursSinceLaunch {
		return fmt.Errorf("hours after launch %v exceeds hours since launch %v: %w",
			hoursAfterLaunch, hoursSinceLaunch, domain.ErrInvalidHolder)
	}
	if !isFinite(minBalance) || minBalance <= 0 {
		return fmt.Errorf("min balance %v must be positive: %w", minBalance, domain.ErrInvalidParams)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
