// Package royalty implements the royalty table attached to a series and the
// payout split computed from it when a token is sold.
package royalty

import (
	"fmt"

	"github.com/seriesorg/libseries-go/token"
)

const (
	// BpsDenominator is the basis-point scale: shares are integer units of
	// 1/10000 for fixed-point-safe arithmetic.
	BpsDenominator = 10000

	// MaxTotalBps is the creation-time cap on the summed royalty shares,
	// reserving at least 1000 bps for the owner at payout time.
	MaxTotalBps = 9000

	// MaxRecipients bounds the royalty table size so payout computation
	// stays cheap.
	MaxRecipients = 50
)

// Table maps royalty recipients to their basis-point shares. A table is
// attached to a series at creation and is immutable thereafter.
type Table map[token.AccountID]uint32

// Validate checks the creation-time royalty invariants: well-formed
// recipients, at most MaxRecipients entries, total at most MaxTotalBps.
func Validate(t Table) error {
	if len(t) > MaxRecipients {
		return fmt.Errorf("%w: %d recipients", ErrTooManyRecipients, len(t))
	}
	var total uint64
	for recipient, bps := range t {
		if err := recipient.Validate(); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient.String())
		}
		total += uint64(bps)
	}
	if total > MaxTotalBps {
		return fmt.Errorf("%w: %d", ErrRoyaltyExceeded, total)
	}
	return nil
}

// Sum returns the summed basis points of the table.
func Sum(t Table) uint64 {
	var total uint64
	for _, bps := range t {
		total += uint64(bps)
	}
	return total
}

// Clone returns an independent copy of the table.
func Clone(t Table) Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
