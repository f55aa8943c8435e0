package domain

import "fmt"

// RunParams holds the per-run distribution configuration.
type RunParams struct {
	MinBalance       float64 // qualification threshold, > 0
	MaxBalance       float64 // eligibility ceiling, >= MinBalance
	TreasuryTotal    float64 // reward pool before fee reservation, >= 0
	FeeReserve       float64 // fraction withheld before distribution, in [0, 1)
	HoursSinceLaunch float64 // reference "now" in hours, >= 0
}

// Validate rejects malformed configuration before any computation runs.
func (p RunParams) Validate() error {
	if !isFinite(p.MinBalance) || p.MinBalance <= 0 {
		return fmt.Errorf("min balance %v must be positive: %w", p.MinBalance, ErrInvalidParams)
	}
	if !isFinite(p.MaxBalance) || p.MaxBalance < p.MinBalance {
		return fmt.Errorf("max balance %v must be >= min balance %v: %w",
			p.MaxBalance, p.MinBalance, ErrInvalidParams)
	}
	if !isFinite(p.TreasuryTotal) || p.TreasuryTotal < 0 {
		return fmt.Errorf("treasury total %v must be finite and non-negative: %w",
			p.TreasuryTotal, ErrInvalidParams)
	}
	if !isFinite(p.FeeReserve) || p.FeeReserve < 0 || p.FeeReserve >= 1 {
		return fmt.Errorf("fee reserve %v must be in [0, 1): %w", p.FeeReserve, ErrInvalidParams)
	}
	if !isFinite(p.HoursSinceLaunch) || p.HoursSinceLaunch < 0 {
		return fmt.Errorf("hours since launch %v must be finite and non-negative: %w",
			p.HoursSinceLaunch, ErrInvalidParams)
	}
	return nil
}

// AvailableForDistribution returns the pool after fee reservation.
func (p RunParams) AvailableForDistribution() float64 {
	return p.TreasuryTotal * (1 - p.FeeReserve)
}

// DistributionRun represents a completed distribution run.
// Corresponds to distribution_runs table in PostgreSQL.
type DistributionRun struct {
	RunID            string  // PRIMARY KEY, deterministic hash
	MinBalance       float64
	MaxBalance       float64
	TreasuryTotal    float64
	FeeReserve       float64
	HoursSinceLaunch float64
	HolderCount      int     // holders evaluated
	AllocationCount  int     // allocations after the dust filter
	TotalWeight      float64 // sum of totalWeight over allocations
	TotalDistributed float64 // sum of amount over allocations
	GeneratedAt      int64   // Unix timestamp in milliseconds
	CreatedAt        int64   // record creation timestamp (ms)
}

// Params reconstructs the run configuration from a stored run.
func (r *DistributionRun) Params() RunParams {
	return RunParams{
		MinBalance:       r.MinBalance,
		MaxBalance:       r.MaxBalance,
		TreasuryTotal:    r.TreasuryTotal,
		FeeReserve:       r.FeeReserve,
		HoursSinceLaunch: r.HoursSinceLaunch,
	}
}
