package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders allocation lines as CSV string.
func RenderCSV(lines []AllocationLine) string {
	var sb strings.Builder

	// Header
	sb.WriteString("address,tokens,balance_weight,early_bonus,tenure_bonus,")
	sb.WriteString("total_weight,hours_held,share,share_pct,amount\n")

	// Rows
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%s,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.8f,%.6f,%.8f\n",
			l.Address,
			l.Tokens,
			l.BalanceWeight,
			l.EarlyBonus,
			l.TenureBonus,
			l.TotalWeight,
			l.HoursHeld,
			l.Share,
			l.SharePct,
			l.Amount,
		))
	}

	return sb.String()
}
