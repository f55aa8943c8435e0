// Package idhash derives deterministic identifiers for distribution runs.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"solana-rewards-lab/internal/domain"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(minBalance|maxBalance|treasury|feeReserve|hoursSinceLaunch|generatedAt|addr1,addr2,...)
// Addresses are hashed in the order holders were supplied to the run.
// Returns hex-encoded hash (64 characters).
func ComputeRunID(p domain.RunParams, generatedAt int64, addresses []string) string {
	var sb strings.Builder
	sb.WriteString(formatFloat(p.MinBalance))
	sb.WriteByte('|')
	sb.WriteString(formatFloat(p.MaxBalance))
	sb.WriteByte('|')
	sb.WriteString(formatFloat(p.TreasuryTotal))
	sb.WriteByte('|')
	sb.WriteString(formatFloat(p.FeeReserve))
	sb.WriteByte('|')
	sb.WriteString(formatFloat(p.HoursSinceLaunch))
	sb.WriteByte('|')
	sb.WriteString(fmt.Sprintf("%d", generatedAt))
	sb.WriteByte('|')
	sb.WriteString(strings.Join(addresses, ","))

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}

// formatFloat renders a float with the shortest exact representation,
// so the hash input is stable across runs.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
