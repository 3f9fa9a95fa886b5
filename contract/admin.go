package contract

import (
	"strconv"
	"time"

	"github.com/seriesorg/libseries-go/token"
)

// SetFee changes the transaction fee. A nil startsAt applies immediately and
// discards any pending change; a future startsAt schedules the change for
// lazy activation. Owner only, with the one-unit intent deposit.
func (c *Contract) SetFee(call Call, bps uint32, startsAt *time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return err
	}
	if err := c.requireOwner(call); err != nil {
		return err
	}

	// A pending change whose start time has already passed is promoted
	// first, so installing a new change never erases a fee that was due.
	if _, err := c.resolveFee(); err != nil {
		return err
	}
	if err := c.state.Fee.Set(bps, startsAt, c.clock.Now()); err != nil {
		return err
	}
	if err := c.states.Save(c.state); err != nil {
		return err
	}

	params := struct {
		Bps      uint32 `json:"transaction_fee_bps"`
		StartsAt string `json:"starts_at,omitempty"`
	}{Bps: bps}
	if startsAt != nil {
		params.StartsAt = strconv.FormatInt(startsAt.UnixMilli(), 10)
	}
	c.sink.EmitParams("set_transaction_fee", params)
	return nil
}

// SetTreasury changes the account receiving fee cuts. Owner only, with the
// one-unit intent deposit.
func (c *Contract) SetTreasury(call Call, treasury token.AccountID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return err
	}
	if err := c.requireOwner(call); err != nil {
		return err
	}
	if err := treasury.Validate(); err != nil {
		return err
	}

	c.state.TreasuryID = treasury
	return c.states.Save(c.state)
}

// SetContractMeta updates the contract-level metadata. The spec identifier
// is pinned. Owner only, with the one-unit intent deposit.
func (c *Contract) SetContractMeta(call Call, meta Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return err
	}
	if err := c.requireOwner(call); err != nil {
		return err
	}

	meta.Spec = MetadataSpec
	c.state.Meta = meta
	return c.states.Save(c.state)
}
