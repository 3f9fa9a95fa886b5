package contract

import (
	"fmt"

	"github.com/seriesorg/libseries-go/deposit"
	"github.com/seriesorg/libseries-go/event"
	"github.com/seriesorg/libseries-go/ownership"
	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/series"
	"github.com/seriesorg/libseries-go/token"
)

// Buy mints the next edition of a priced series to receiver, or to the
// caller when receiver is empty. The attached deposit must cover the price
// plus the storage growth of the new token. The treasury receives the
// series' snapshotted fee cut of the price and the creator receives the
// rest.
func (c *Contract) Buy(call Call, id token.SeriesID, receiver token.AccountID) (token.ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := call.Caller.Validate(); err != nil {
		return "", err
	}
	if receiver == "" {
		receiver = call.Caller
	}
	if err := receiver.Validate(); err != nil {
		return "", err
	}
	s, err := c.getSeries(id)
	if err != nil {
		return "", err
	}
	if s.Price == nil {
		return "", fmt.Errorf("%w: %s", ErrNotForSale, id)
	}
	price := *s.Price
	if call.Deposit.Cmp(price) < 0 {
		return "", fmt.Errorf("%w: price %s, attached %s",
			ErrInsufficientDeposit, token.FormatBalance(price), token.FormatBalance(call.Deposit))
	}

	// The fee split uses the snapshot frozen on the series, not the live
	// schedule.
	cut := royalty.Share(s.FeeBps, price)

	oldSize, err := deposit.Size(s)
	if err != nil {
		return "", err
	}
	tokenID, err := s.Mint()
	if err != nil {
		return "", err
	}
	rec := &ownership.Record{
		TokenID:  tokenID,
		OwnerID:  receiver,
		IssuedAt: c.nowMillis(),
	}
	grown, err := c.mintGrowth(s, oldSize, rec)
	if err != nil {
		return "", err
	}
	refund, err := c.storageRefund(call, price, grown)
	if err != nil {
		return "", err
	}

	if err := c.series.Put(s); err != nil {
		return "", err
	}
	if err := c.owners.Mint(rec); err != nil {
		return "", err
	}

	if err := c.bank.Pay(c.state.TreasuryID, cut); err != nil {
		return "", err
	}
	if err := c.bank.Pay(s.CreatorID, price.Sub(cut)); err != nil {
		return "", err
	}

	c.sink.Emit(event.NftMint(event.MintData{
		OwnerID:  string(receiver),
		TokenIDs: []string{tokenID},
	}))
	if err := c.bank.Pay(call.Caller, refund); err != nil {
		return "", err
	}
	return tokenID, nil
}

// Mint mints the next edition of a series to receiver. Creator only; no
// payment beyond the storage charge.
func (c *Contract) Mint(call Call, id token.SeriesID, receiver token.AccountID) (token.ID, error) {
	ids, err := c.MintBatch(call, id, receiver, 1)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// MintBatch mints the next amount editions of a series to receiver in one
// call, emitting a single mint event for the batch. Creator only.
func (c *Contract) MintBatch(call Call, id token.SeriesID, receiver token.AccountID, amount uint64) ([]token.ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount == 0 {
		return nil, ErrNoTokens
	}
	if err := receiver.Validate(); err != nil {
		return nil, err
	}
	s, err := c.getSeries(id)
	if err != nil {
		return nil, err
	}
	if err := requireCreator(call, s); err != nil {
		return nil, err
	}

	oldSize, err := deposit.Size(s)
	if err != nil {
		return nil, err
	}

	issuedAt := c.nowMillis()
	tokenIDs := make([]token.ID, 0, amount)
	recs := make([]*ownership.Record, 0, amount)
	for i := uint64(0); i < amount; i++ {
		tokenID, err := s.Mint()
		if err != nil {
			return nil, err
		}
		tokenIDs = append(tokenIDs, tokenID)
		recs = append(recs, &ownership.Record{
			TokenID:  tokenID,
			OwnerID:  receiver,
			IssuedAt: issuedAt,
		})
	}

	grown, err := c.mintGrowth(s, oldSize, recs...)
	if err != nil {
		return nil, err
	}
	refund, err := c.storageRefund(call, token.ZeroBalance, grown)
	if err != nil {
		return nil, err
	}

	if err := c.series.Put(s); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if err := c.owners.Mint(rec); err != nil {
			return nil, err
		}
	}

	c.sink.Emit(event.NftMint(event.MintData{
		OwnerID:  string(receiver),
		TokenIDs: tokenIDs,
	}))
	if err := c.bank.Pay(call.Caller, refund); err != nil {
		return nil, err
	}
	return tokenIDs, nil
}

// mintGrowth sums the storage growth of a mint: the series record's size
// delta plus every new ownership record.
func (c *Contract) mintGrowth(s *series.Series, oldSeriesSize uint64, recs ...*ownership.Record) (uint64, error) {
	newSize, err := deposit.Size(s)
	if err != nil {
		return 0, err
	}
	grown := deposit.Delta(oldSeriesSize, newSize)
	for _, rec := range recs {
		recSize, err := deposit.Size(rec)
		if err != nil {
			return 0, err
		}
		grown += recSize
	}
	return grown, nil
}
