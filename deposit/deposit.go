// Package deposit meters storage growth against attached deposits. Callers
// sum the encoded-size delta of every record a call will write, then charge
// the attached deposit for that many bytes before committing anything.
package deposit

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/seriesorg/libseries-go/token"
)

var (
	// ErrInsufficientStorageDeposit is returned when the attached deposit
	// cannot cover the storage growth of a call.
	ErrInsufficientStorageDeposit = errors.New("deposit: insufficient storage deposit")
)

// Size returns the persisted size of a record: the length of its gob
// encoding, which is what the bolt stores write.
func Size(v any) (uint64, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return 0, fmt.Errorf("deposit: encode: %w", err)
	}
	return uint64(buf.Len()), nil
}

// Delta returns the signed byte growth from replacing the record encoded as
// oldSize bytes with one of newSize bytes. Shrinkage yields zero; storage
// released by an update is not refunded.
func Delta(oldSize, newSize uint64) uint64 {
	if newSize <= oldSize {
		return 0
	}
	return newSize - oldSize
}

// Ledger prices storage growth.
type Ledger struct {
	// ByteCost is the deposit charged per stored byte.
	ByteCost token.Balance
}

// NewLedger returns a ledger with the given per-byte cost.
func NewLedger(byteCost token.Balance) *Ledger {
	return &Ledger{ByteCost: byteCost}
}

// Cost returns the deposit required for bytesAdded bytes of growth.
func (l *Ledger) Cost(bytesAdded uint64) token.Balance {
	return l.ByteCost.Mul64(bytesAdded)
}

// Charge deducts the storage cost of bytesAdded from what remains of the
// attached deposit after spent, and returns the refund due. Refunds of one
// unit or less are kept, matching the original's refund threshold.
func (l *Ledger) Charge(attached, spent token.Balance, bytesAdded uint64) (token.Balance, error) {
	if spent.Cmp(attached) > 0 {
		return token.ZeroBalance, fmt.Errorf("%w: attached %s, spent %s",
			ErrInsufficientStorageDeposit, token.FormatBalance(attached), token.FormatBalance(spent))
	}
	remaining := attached.Sub(spent)
	cost := l.Cost(bytesAdded)
	if remaining.Cmp(cost) < 0 {
		return token.ZeroBalance, fmt.Errorf("%w: need %s, have %s",
			ErrInsufficientStorageDeposit, token.FormatBalance(cost), token.FormatBalance(remaining))
	}
	refund := remaining.Sub(cost)
	if refund.Cmp(token.Bal(1)) <= 0 {
		return token.ZeroBalance, nil
	}
	return refund, nil
}
