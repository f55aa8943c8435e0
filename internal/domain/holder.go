package domain

import (
	"fmt"
	"math"
)

// HolderRecord represents a stored token holder.
// Corresponds to holders table in PostgreSQL.
type HolderRecord struct {
	Address          string  // PRIMARY KEY, base58 wallet address
	Tokens           float64 // token balance, >= 0
	HoursAfterLaunch float64 // hours between launch and first purchase
	CreatedAt        int64   // record creation timestamp (ms)
}

// Holder is the evaluation input for one distribution run: a holder record
// with the run parameters copied onto it. Thresholds travel with the holder
// so that every weight computation is self-contained.
type Holder struct {
	Address          string
	Tokens           float64
	HoursAfterLaunch float64
	HoursSinceLaunch float64 // reference "now", same for every holder in one run
	MinBalance       float64
	MaxBalance       float64
}

// NewHolder builds an evaluation input from a stored record and run parameters.
func NewHolder(rec *HolderRecord, p RunParams) *Holder {
	return &Holder{
		Address:          rec.Address,
		Tokens:           rec.Tokens,
		HoursAfterLaunch: rec.HoursAfterLaunch,
		HoursSinceLaunch: p.HoursSinceLaunch,
		MinBalance:       p.MinBalance,
		MaxBalance:       p.MaxBalance,
	}
}

// Validate checks holder invariants. A failing holder is malformed input,
// not a disqualified one: disqualification is balance-based and silent,
// while validation failures must surface to the caller.
func (h *Holder) Validate() error {
	if h.Address == "" {
		return fmt.Errorf("holder address is empty: %w", ErrInvalidHolder)
	}
	if !isFinite(h.Tokens) || h.Tokens < 0 {
		return fmt.Errorf("holder %s: token balance %v must be finite and non-negative: %w",
			h.Address, h.Tokens, ErrInvalidHolder)
	}
	if !isFinite(h.HoursAfterLaunch) || h.HoursAfterLaunch < 0 {
		return fmt.Errorf("holder %s: hours after launch %v must be finite and non-negative: %w",
			h.Address, h.HoursAfterLaunch, ErrInvalidHolder)
	}
	if !isFinite(h.HoursSinceLaunch) || h.HoursSinceLaunch < 0 {
		return fmt.Errorf("holder %s: hours since launch %v must be finite and non-negative: %w",
			h.Address, h.HoursSinceLaunch, ErrInvalidHolder)
	}
	if h.HoursAfterLaunch > h.HoursSinceLaunch {
		return fmt.Errorf("holder %s: first purchase at %vh is after reference time %vh: %w",
			h.Address, h.HoursAfterLaunch, h.HoursSinceLaunch, ErrInvalidHolder)
	}
	if !isFinite(h.MinBalance) || h.MinBalance <= 0 {
		return fmt.Errorf("holder %s: min balance %v must be positive: %w",
			h.Address, h.MinBalance, ErrInvalidParams)
	}
	if !isFinite(h.MaxBalance) || h.MaxBalance < h.MinBalance {
		return fmt.Errorf("holder %s: max balance %v must be >= min balance %v: %w",
			h.Address, h.MaxBalance, h.MinBalance, ErrInvalidParams)
	}
	return nil
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
