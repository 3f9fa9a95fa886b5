package token

import (
	"fmt"

	"lukechampine.com/uint128"
)

// Balance is a 128-bit unsigned amount of the ledger's smallest value unit.
// Yocto-scale amounts exceed 64 bits, so all money arithmetic is done on
// uint128 values.
type Balance = uint128.Uint128

// ZeroBalance is the zero amount.
var ZeroBalance = uint128.Zero

// Bal converts a uint64 into a Balance.
func Bal(v uint64) Balance { return uint128.From64(v) }

// ParseBalance parses a decimal string into a Balance.
func ParseBalance(s string) (Balance, error) {
	if s == "" {
		return ZeroBalance, fmt.Errorf("%w: empty", ErrInvalidBalance)
	}
	b, err := uint128.FromString(s)
	if err != nil {
		return ZeroBalance, fmt.Errorf("%w: %q", ErrInvalidBalance, s)
	}
	return b, nil
}

// FormatBalance renders a Balance as a decimal string for JSON views.
func FormatBalance(b Balance) string { return b.String() }
