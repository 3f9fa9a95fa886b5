package contract

import (
	"sync"

	"github.com/seriesorg/libseries-go/token"
)

// Bank executes outbound value transfers: sale proceeds, royalty payouts,
// and deposit refunds. The registry never holds balances itself; every
// amount it owes is pushed through the bank inside the call that incurred
// it.
type Bank interface {
	// Pay sends amount to the given account. Zero amounts are allowed and
	// should be a no-op.
	Pay(to token.AccountID, amount token.Balance) error
}

// Payment records one bank transfer.
type Payment struct {
	To     token.AccountID
	Amount token.Balance
}

// MemBank records payments in memory. Test helper.
type MemBank struct {
	mu       sync.Mutex
	payments []Payment
}

var _ Bank = (*MemBank)(nil)

// NewMemBank returns an empty in-memory bank.
func NewMemBank() *MemBank { return &MemBank{} }

func (b *MemBank) Pay(to token.AccountID, amount token.Balance) error {
	if amount.IsZero() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payments = append(b.payments, Payment{To: to, Amount: amount})
	return nil
}

// Payments returns a copy of all recorded payments.
func (b *MemBank) Payments() []Payment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Payment(nil), b.payments...)
}

// Paid sums every payment made to an account.
func (b *MemBank) Paid(to token.AccountID) token.Balance {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := token.ZeroBalance
	for _, p := range b.payments {
		if p.To == to {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Reset discards recorded payments.
func (b *MemBank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payments = nil
}
