package royalty

import (
	"fmt"

	"github.com/seriesorg/libseries-go/token"
)

// Payout maps payout recipients to the amount each is owed from a sale.
type Payout map[token.AccountID]token.Balance

// Share computes floor(bps * balance / 10000).
func Share(bps uint32, balance token.Balance) token.Balance {
	return balance.Mul64(uint64(bps)).Div64(BpsDenominator)
}

// ComputePayout splits a sale balance across the royalty table. Every
// recipient other than the owner receives the floor of its proportional
// share; the owner receives the remainder, absorbing all rounding slack, so
// the returned payout sums to exactly balance.
//
// The owner passed here must be the party the sale owed: for a
// transfer-with-payout flow that is the owner captured before the transfer.
func ComputePayout(t Table, owner token.AccountID, balance token.Balance, maxRecipients int) (Payout, error) {
	if len(t) > maxRecipients {
		return nil, fmt.Errorf("%w: %d recipients, market limit %d", ErrTooManyRecipients, len(t), maxRecipients)
	}

	payout := make(Payout, len(t)+1)
	distributed := token.ZeroBalance
	var paidBps uint64
	for recipient, bps := range t {
		if recipient == owner {
			continue
		}
		amount := Share(bps, balance)
		payout[recipient] = amount
		distributed = distributed.Add(amount)
		paidBps += uint64(bps)
	}
	if paidBps > BpsDenominator {
		return nil, fmt.Errorf("%w: %d", ErrPayoutOverflow, paidBps)
	}

	// Owner share is the remainder, never an independent percentage.
	payout[owner] = balance.Sub(distributed)
	return payout, nil
}

// FlatPayout computes the per-recipient shares of the table without an owner
// remainder. Used by the read-only payout projection.
func FlatPayout(t Table, balance token.Balance, maxRecipients int) (Payout, error) {
	if len(t) > maxRecipients {
		return nil, fmt.Errorf("%w: %d recipients, market limit %d", ErrTooManyRecipients, len(t), maxRecipients)
	}
	payout := make(Payout, len(t))
	for recipient, bps := range t {
		payout[recipient] = Share(bps, balance)
	}
	return payout, nil
}
