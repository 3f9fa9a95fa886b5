package contract

import (
	"errors"
	"fmt"

	"github.com/seriesorg/libseries-go/deposit"
	"github.com/seriesorg/libseries-go/event"
	"github.com/seriesorg/libseries-go/ownership"
	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/token"
)

// Transfer moves a token to receiver. The caller must be the owner or hold
// an approval (matching approvalID when supplied). Requires the one-unit
// intent deposit.
func (c *Contract) Transfer(call Call, receiver token.AccountID, tokenID token.ID, approvalID *uint64, memo string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return err
	}
	if err := receiver.Validate(); err != nil {
		return err
	}

	prev, err := c.owners.Transfer(call.Caller, receiver, tokenID, approvalID)
	if err != nil {
		return err
	}

	c.sink.Emit(event.NftTransfer(event.TransferData{
		AuthorizedID: authorizedID(call.Caller, prev),
		OldOwnerID:   string(prev),
		NewOwnerID:   string(receiver),
		TokenIDs:     []string{tokenID},
		Memo:         memo,
	}))
	return nil
}

// TransferCall moves a token to receiver and records a pending transfer for
// later resolution. The returned id feeds ResolveTransfer once the receiver
// has accepted or rejected the token. Requires the one-unit intent deposit.
func (c *Contract) TransferCall(call Call, receiver token.AccountID, tokenID token.ID, approvalID *uint64, memo string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return 0, err
	}
	if err := receiver.Validate(); err != nil {
		return 0, err
	}

	// Snapshot before the move so a rejection can restore the record,
	// approvals included.
	snapshot, err := c.owners.Get(tokenID)
	if err != nil {
		return 0, err
	}
	prev, err := c.owners.Transfer(call.Caller, receiver, tokenID, approvalID)
	if err != nil {
		return 0, err
	}

	pendingID, err := c.pending.Put(&PendingTransfer{
		TokenID:      tokenID,
		SenderID:     call.Caller,
		ReceiverID:   receiver,
		AuthorizedID: token.AccountID(authorizedID(call.Caller, prev)),
		Previous:     snapshot,
		Memo:         memo,
	})
	if err != nil {
		return 0, err
	}

	c.sink.Emit(event.NftTransfer(event.TransferData{
		AuthorizedID: authorizedID(call.Caller, prev),
		OldOwnerID:   string(prev),
		NewOwnerID:   string(receiver),
		TokenIDs:     []string{tokenID},
		Memo:         memo,
	}))
	return pendingID, nil
}

// ResolveTransfer settles a pending transfer. When accepted, the token stays
// with the receiver. When rejected, the pre-transfer ownership record is
// restored and a reverse transfer event is emitted — unless the receiver has
// already moved the token on, in which case the transfer stands. Returns
// whether the token remained transferred.
func (c *Contract) ResolveTransfer(pendingID uint64, accepted bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.pending.Take(pendingID)
	if err != nil {
		return false, err
	}
	if accepted {
		return true, nil
	}

	owner, err := c.owners.Owner(p.TokenID)
	if err != nil {
		if errors.Is(err, ownership.ErrTokenNotFound) {
			// Burned while pending; nothing to restore.
			return true, nil
		}
		return false, err
	}
	if owner != p.ReceiverID {
		return true, nil
	}

	if err := c.owners.Burn(p.ReceiverID, p.TokenID); err != nil {
		return false, err
	}
	if err := c.owners.Restore(p.Previous); err != nil {
		return false, err
	}

	c.sink.Emit(event.NftTransfer(event.TransferData{
		OldOwnerID: string(p.ReceiverID),
		NewOwnerID: string(p.Previous.OwnerID),
		TokenIDs:   []string{p.TokenID},
	}))
	return false, nil
}

// TransferPayout moves a token to receiver and returns the royalty payout
// for balance, computed for the owner as of before the transfer. A nil
// balance marks a non-commercial transfer and yields no payout. Requires
// the one-unit intent deposit.
func (c *Contract) TransferPayout(call Call, receiver token.AccountID, tokenID token.ID, approvalID *uint64, balance *token.Balance, maxRecipients int) (royalty.Payout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return nil, err
	}
	if err := receiver.Validate(); err != nil {
		return nil, err
	}

	// The payout is computed against the pre-transfer owner, before any
	// mutation, so a payout failure leaves the ownership ledger untouched.
	var payout royalty.Payout
	if balance != nil {
		table, err := c.royaltyOf(tokenID)
		if err != nil {
			return nil, err
		}
		owner, err := c.owners.Owner(tokenID)
		if err != nil {
			return nil, err
		}
		payout, err = royalty.ComputePayout(table, owner, *balance, maxRecipients)
		if err != nil {
			return nil, err
		}
	}

	prev, err := c.owners.Transfer(call.Caller, receiver, tokenID, approvalID)
	if err != nil {
		return nil, err
	}

	c.sink.Emit(event.NftTransfer(event.TransferData{
		AuthorizedID: authorizedID(call.Caller, prev),
		OldOwnerID:   string(prev),
		NewOwnerID:   string(receiver),
		TokenIDs:     []string{tokenID},
	}))
	return payout, nil
}

// Payout returns the royalty payout for selling the token at balance,
// computed for the current owner. Read-only.
func (c *Contract) Payout(tokenID token.ID, balance token.Balance, maxRecipients int) (royalty.Payout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.royaltyOf(tokenID)
	if err != nil {
		return nil, err
	}
	owner, err := c.owners.Owner(tokenID)
	if err != nil {
		return nil, err
	}
	return royalty.ComputePayout(table, owner, balance, maxRecipients)
}

// Burn removes the caller's token from the ownership ledger. The edition
// number stays consumed in its series and is never reissued. Requires the
// one-unit intent deposit.
func (c *Contract) Burn(call Call, tokenID token.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return err
	}
	if err := c.owners.Burn(call.Caller, tokenID); err != nil {
		return err
	}

	c.sink.Emit(event.NftBurn(event.BurnData{
		OwnerID:  string(call.Caller),
		TokenIDs: []string{tokenID},
	}))
	return nil
}

// Approve grants account permission to transfer the caller's token and
// returns the issued approval id. The storage growth of the approval entry
// is charged against the attached deposit.
func (c *Contract) Approve(call Call, account token.AccountID, tokenID token.ID) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := account.Validate(); err != nil {
		return 0, err
	}
	rec, err := c.owners.Get(tokenID)
	if err != nil {
		return 0, err
	}
	if rec.OwnerID != call.Caller {
		return 0, fmt.Errorf("%w: %s", ownership.ErrNotOwner, tokenID)
	}

	oldSize, err := deposit.Size(rec)
	if err != nil {
		return 0, err
	}
	grown := rec.Clone()
	if grown.Approvals == nil {
		grown.Approvals = make(map[token.AccountID]uint64)
	}
	grown.Approvals[account] = grown.NextApprovalID
	newSize, err := deposit.Size(grown)
	if err != nil {
		return 0, err
	}
	refund, err := c.storageRefund(call, token.ZeroBalance, deposit.Delta(oldSize, newSize))
	if err != nil {
		return 0, err
	}

	id, err := c.owners.Approve(call.Caller, account, tokenID)
	if err != nil {
		return 0, err
	}
	if err := c.bank.Pay(call.Caller, refund); err != nil {
		return 0, err
	}
	return id, nil
}

// Revoke removes an account's approval on the caller's token. Requires the
// one-unit intent deposit.
func (c *Contract) Revoke(call Call, account token.AccountID, tokenID token.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return err
	}
	return c.owners.Revoke(call.Caller, account, tokenID)
}

// royaltyOf resolves the royalty table of the series a token belongs to.
func (c *Contract) royaltyOf(tokenID token.ID) (royalty.Table, error) {
	seriesID, err := token.SeriesOf(tokenID)
	if err != nil {
		return nil, err
	}
	s, err := c.getSeries(seriesID)
	if err != nil {
		return nil, err
	}
	return s.Royalty, nil
}

// authorizedID reports the approved sender of a transfer, or empty when the
// owner moved the token themselves.
func authorizedID(sender, owner token.AccountID) string {
	if sender == owner {
		return ""
	}
	return string(sender)
}
