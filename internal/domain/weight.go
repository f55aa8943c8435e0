package domain

// WeightResult holds one holder's qualification and weight score.
// Computed fresh on every evaluation, never persisted on its own.
type WeightResult struct {
	BalanceWeight float64 // 1 + log10(balance / minBalance)
	EarlyBonus    float64 // 1 + 2*exp(-daysSinceLaunch/2)
	TenureBonus   float64 // 1 + 0.6*log2(daysHeld + 1)
	TimeWeight    float64 // EarlyBonus * TenureBonus
	TotalWeight   float64 // BalanceWeight * TimeWeight
	HoursHeld     float64 // hoursSinceLaunch - hoursAfterLaunch
	Qualified     bool    // balance >= minBalance
}
