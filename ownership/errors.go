package ownership

import "errors"

var (
	// ErrTokenNotFound indicates the token id has no ownership record.
	ErrTokenNotFound = errors.New("ownership: token not found")

	// ErrDuplicateToken indicates a mint for a token id that already has an
	// ownership record.
	ErrDuplicateToken = errors.New("ownership: duplicate token id")

	// ErrNotOwner indicates the caller does not own the token.
	ErrNotOwner = errors.New("ownership: caller is not the token owner")

	// ErrSenderNotApproved indicates a transfer by a sender who is neither
	// the owner nor an approved account.
	ErrSenderNotApproved = errors.New("ownership: sender is not owner or approved")

	// ErrApprovalMismatch indicates the supplied approval id does not match
	// the sender's recorded approval.
	ErrApprovalMismatch = errors.New("ownership: approval id mismatch")

	// ErrSelfTransfer indicates a transfer whose receiver already owns the
	// token.
	ErrSelfTransfer = errors.New("ownership: receiver already owns token")
)
