package domain

// DistributionStats summarizes one distribution run.
//
// QualifiedCount and QualifiedTokens use the min-balance check only,
// not the engine's full eligibility predicate. A holder above the max
// balance ceiling still counts as qualified here.
type DistributionStats struct {
	TotalHolders    int     // holders supplied to the run
	QualifiedCount  int     // holders with balance >= their min balance
	QualifiedTokens float64 // token sum over the qualified subset

	TotalWeight      float64 // sum of totalWeight over allocations
	TotalDistributed float64 // sum of amount over allocations
	AvgWeight        float64 // 0 when there are no allocations
	AvgReward        float64 // 0 when there are no allocations

	// Extremes over the allocation list. Nil when the list is empty.
	// Ties resolve to the first-encountered allocation in input order.
	TopByWeight    *AllocationResult
	TopByAmount    *AllocationResult
	BottomByWeight *AllocationResult
	BottomByAmount *AllocationResult
}
