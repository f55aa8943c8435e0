package domain

// AllocationResult is one holder's share of a distribution run.
// Produced only for eligible holders whose amount survives the dust filter.
type AllocationResult struct {
	Address  string
	Tokens   float64
	Weight   WeightResult
	Share    float64 // fraction of total weightage, in [0, 1]
	SharePct float64 // Share * 100
	Amount   float64 // availableForDistribution * Share
}

// AllocationRow is the append-only analytics form of an AllocationResult.
// Corresponds to allocations table in ClickHouse.
type AllocationRow struct {
	RunID         string
	Address       string
	Tokens        float64
	BalanceWeight float64
	EarlyBonus    float64
	TenureBonus   float64
	TotalWeight   float64
	HoursHeld     float64
	Share         float64
	Amount        float64
	GeneratedAt   int64 // Unix timestamp in milliseconds
}

// NewAllocationRow flattens an AllocationResult for storage.
func NewAllocationRow(runID string, a *AllocationResult, generatedAt int64) *AllocationRow {
	return &AllocationRow{
		RunID:         runID,
		Address:       a.Address,
		Tokens:        a.Tokens,
		BalanceWeight: a.Weight.BalanceWeight,
		EarlyBonus:    a.Weight.EarlyBonus,
		TenureBonus:   a.Weight.TenureBonus,
		TotalWeight:   a.Weight.TotalWeight,
		HoursHeld:     a.Weight.HoursHeld,
		Share:         a.Share,
		Amount:        a.Amount,
		GeneratedAt:   generatedAt,
	}
}
