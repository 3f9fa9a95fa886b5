package token

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a pagination offset at or past the end of the
	// collection.
	ErrOutOfBounds = errors.New("token: out of bounds, please use a smaller from_index")

	// ErrZeroLimit indicates an explicit pagination limit of zero.
	ErrZeroLimit = errors.New("token: cannot provide limit of 0")
)

// CheckPage validates a pagination request against the collection size.
// A fromIndex at or beyond total is out of bounds; a zero limit is rejected.
func CheckPage(fromIndex, limit, total uint64) error {
	if fromIndex >= total {
		return fmt.Errorf("%w: from_index %d, size %d", ErrOutOfBounds, fromIndex, total)
	}
	if limit == 0 {
		return ErrZeroLimit
	}
	return nil
}
