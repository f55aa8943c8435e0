package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Distribution Report\n\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Min Balance | %.6f |\n", r.Params.MinBalance))
	sb.WriteString(fmt.Sprintf("| Max Balance | %.6f |\n", r.Params.MaxBalance))
	sb.WriteString(fmt.Sprintf("| Treasury Total | %.6f |\n", r.Params.TreasuryTotal))
	sb.WriteString(fmt.Sprintf("| Fee Reserve | %.4f |\n", r.Params.FeeReserve))
	sb.WriteString(fmt.Sprintf("| Hours Since Launch | %.2f |\n", r.Params.HoursSinceLaunch))
	sb.WriteString("\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Holders Evaluated | %d |\n", r.HolderCount))
	sb.WriteString(fmt.Sprintf("| Allocations | %d |\n", r.AllocationCount))
	sb.WriteString(fmt.Sprintf("| Total Weight | %.6f |\n", r.TotalWeight))
	sb.WriteString(fmt.Sprintf("| Total Distributed | %.6f |\n", r.TotalDistributed))
	sb.WriteString(fmt.Sprintf("| Avg Weight | %.6f |\n", r.AvgWeight))
	sb.WriteString(fmt.Sprintf("| Avg Reward | %.6f |\n", r.AvgAmount))
	sb.WriteString("\n")

	// Extremes
	sb.WriteString("## Extremes\n\n")
	if r.TopByAmount != nil {
		sb.WriteString("| Position | Address | Weight | Amount |\n")
		sb.WriteString("|----------|---------|--------|--------|\n")
		writeExtreme := func(label string, l *AllocationLine) {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.6f | %.6f |\n",
				label, l.Address, l.TotalWeight, l.Amount))
		}
		writeExtreme("Top by Amount", r.TopByAmount)
		writeExtreme("Bottom by Amount", r.BottomByAmount)
		writeExtreme("Top by Weight", r.TopByWeight)
		writeExtreme("Bottom by Weight", r.BottomByWeight)
	} else {
		sb.WriteString("No allocations in this run.\n")
	}
	sb.WriteString("\n")

	// Allocations
	sb.WriteString("## Allocations\n\n")
	if len(r.Allocations) > 0 {
		sb.WriteString("| Address | Tokens | BalanceW | EarlyB | TenureB | Weight | Share% | Amount |\n")
		sb.WriteString("|---------|--------|----------|--------|---------|--------|--------|--------|\n")
		for _, a := range r.Allocations {
			sb.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.6f |\n",
				a.Address, a.Tokens,
				a.BalanceWeight, a.EarlyBonus, a.TenureBonus, a.TotalWeight,
				a.SharePct, a.Amount))
		}
	} else {
		sb.WriteString("No allocations available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
