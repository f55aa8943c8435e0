// Package address validates Solana wallet addresses supplied as holder
// identifiers. An address is the base58 encoding of a 32-byte ed25519
// public key; wallet keys additionally lie on the curve (program-derived
// addresses do not).
package address

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PubkeyLength is the decoded length of a Solana address in bytes.
const PubkeyLength = 32

// ErrInvalidAddress is returned for strings that do not decode to a
// 32-byte public key.
var ErrInvalidAddress = errors.New("invalid address")

// Validate checks that addr is well-formed base58 decoding to 32 bytes.
func Validate(addr string) error {
	if addr == "" {
		return fmt.Errorf("empty address: %w", ErrInvalidAddress)
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("decode address %q: %v: %w", addr, err, ErrInvalidAddress)
	}
	if len(decoded) != PubkeyLength {
		return fmt.Errorf("address %q decodes to %d bytes, want %d: %w",
			addr, len(decoded), PubkeyLength, ErrInvalidAddress)
	}
	return nil
}

// IsOnCurve reports whether a valid address is a point on the ed25519
// curve, i.e. a plausible wallet key rather than a derived address.
// Returns false for malformed addresses.
func IsOnCurve(addr string) bool {
	decoded, err := base58.Decode(addr)
	if err != nil || len(decoded) != PubkeyLength {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
