package royalty

import "errors"

var (
	// ErrRoyaltyExceeded indicates the royalty table totals more than the
	// 9000 bps creation cap.
	ErrRoyaltyExceeded = errors.New("royalty: total royalty exceeds 9000 basis points")

	// ErrTooManyRecipients indicates the royalty table is larger than the
	// recipient bound.
	ErrTooManyRecipients = errors.New("royalty: too many royalty recipients")

	// ErrInvalidRecipient indicates a royalty recipient is not a well-formed
	// account id.
	ErrInvalidRecipient = errors.New("royalty: invalid royalty recipient")

	// ErrPayoutOverflow indicates the non-owner royalty shares total more
	// than 10000 basis points at payout time.
	ErrPayoutOverflow = errors.New("royalty: total payout exceeds 10000 basis points")
)
