// Package ownership implements the token ownership substrate: owner-by-id
// records, per-token approvals and per-owner enumeration. The series ledger
// layers its economic invariants on top of this package; nothing here knows
// about prices, fees or royalties.
package ownership

import (
	"github.com/seriesorg/libseries-go/token"
)

// Record is the ownership state of one minted token.
type Record struct {
	TokenID        token.ID
	OwnerID        token.AccountID
	IssuedAt       string // timestamp string captured at mint
	Approvals      map[token.AccountID]uint64
	NextApprovalID uint64
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	cp := *r
	if r.Approvals != nil {
		cp.Approvals = make(map[token.AccountID]uint64, len(r.Approvals))
		for k, v := range r.Approvals {
			cp.Approvals[k] = v
		}
	}
	return &cp
}

// approvedFor reports whether sender may move the token, and checks the
// optional approval id against the sender's recorded one.
func (r *Record) approvedFor(sender token.AccountID, approvalID *uint64) error {
	if sender == r.OwnerID {
		return nil
	}
	id, ok := r.Approvals[sender]
	if !ok {
		return ErrSenderNotApproved
	}
	if approvalID != nil && *approvalID != id {
		return ErrApprovalMismatch
	}
	return nil
}

// Store persists ownership records.
type Store interface {
	// Mint creates the ownership record for a freshly minted token.
	Mint(rec *Record) error

	// Get retrieves the ownership record of a token.
	Get(tokenID token.ID) (*Record, error)

	// Owner returns the current owner of a token.
	Owner(tokenID token.ID) (token.AccountID, error)

	// Transfer moves the token from its current owner to receiver. sender
	// must be the owner or an approved account (with a matching approval id
	// when one is supplied). Approvals are cleared on success. Returns the
	// previous owner.
	Transfer(sender, receiver token.AccountID, tokenID token.ID, approvalID *uint64) (token.AccountID, error)

	// Approve grants account permission to transfer the token and returns
	// the issued approval id. Caller must be the owner.
	Approve(owner, account token.AccountID, tokenID token.ID) (uint64, error)

	// Revoke removes an account's approval. Caller must be the owner.
	Revoke(owner, account token.AccountID, tokenID token.ID) error

	// Burn removes the ownership record. Caller must be the owner.
	Burn(owner token.AccountID, tokenID token.ID) error

	// Restore re-creates a record exactly as supplied, including approvals.
	// Used by compensating transfers after a rejected transfer-call.
	Restore(rec *Record) error

	// TokensForOwner returns up to limit token ids owned by owner starting
	// at fromIndex. An owner with no tokens yields an empty page without a
	// bounds error.
	TokensForOwner(owner token.AccountID, fromIndex, limit uint64) ([]token.ID, error)

	// SupplyForOwner returns how many tokens owner holds.
	SupplyForOwner(owner token.AccountID) (uint64, error)

	// TotalSupply returns the number of live ownership records.
	TotalSupply() (uint64, error)

	// List returns up to limit token ids starting at fromIndex, with the
	// usual pagination bounds errors.
	List(fromIndex, limit uint64) ([]token.ID, error)
}
