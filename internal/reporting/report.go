package reporting

import (
	"time"

	"solana-rewards-lab/internal/domain"
)

// Report represents a rendered view of one distribution run.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string

	// Run parameters
	Params domain.RunParams

	// Summary
	HolderCount      int
	AllocationCount  int
	TotalWeight      float64
	TotalDistributed float64
	AvgWeight        float64
	AvgAmount        float64

	// Extremes (nil when the run produced no allocations)
	TopByAmount    *AllocationLine
	BottomByAmount *AllocationLine
	TopByWeight    *AllocationLine
	BottomByWeight *AllocationLine

	// Allocations sorted by amount descending, address ascending
	Allocations []AllocationLine
}

// AllocationLine is one allocation row prepared for display.
type AllocationLine struct {
	Address       string
	Tokens        float64
	BalanceWeight float64
	EarlyBonus    float64
	TenureBonus   float64
	TotalWeight   float64
	HoursHeld     float64
	Share         float64
	SharePct      float64
	Amount        float64
}

func lineFromRow(r *domain.AllocationRow) AllocationLine {
	return AllocationLine{
		Address:       r.Address,
		Tokens:        r.Tokens,
		BalanceWeight: r.BalanceWeight,
		EarlyBonus:    r.EarlyBonus,
		TenureBonus:   r.TenureBonus,
		TotalWeight:   r.TotalWeight,
		HoursHeld:     r.HoursHeld,
		Share:         r.Share,
		SharePct:      r.Share * 100,
		Amount:        r.Amount,
	}
}
