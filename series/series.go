// Package series implements the series registry: the central entity store of
// the ledger and the per-series minting state machine. A series carries
// shared metadata, a creator, an optional price, a royalty table, a fee
// snapshot and the append-only list of token ids minted under it. Individual
// tokens are derived from a series plus an edition number, never stored as
// independent records here.
package series

import (
	"fmt"

	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/token"
)

// Series is one registered token series. Tokens is append-only: burning a
// token removes it from the ownership substrate but never from this list, so
// edition numbers are monotonic and never reused.
type Series struct {
	ID         token.SeriesID
	Metadata   token.Metadata
	CreatorID  token.AccountID
	Price      *token.Balance // nil means not for sale
	IsMintable bool
	Royalty    royalty.Table
	FeeBps     uint32 // fee snapshot taken at creation / price-set time
	Tokens     []token.ID
}

// New constructs a freshly created series: mintable, no tokens minted.
func New(id token.SeriesID, meta token.Metadata, creator token.AccountID, price *token.Balance, r royalty.Table, feeBps uint32) *Series {
	return &Series{
		ID:         id,
		Metadata:   meta,
		CreatorID:  creator,
		Price:      price,
		IsMintable: true,
		Royalty:    royalty.Clone(r),
		FeeBps:     feeBps,
	}
}

// MintedCount returns the number of editions minted so far.
func (s *Series) MintedCount() uint64 { return uint64(len(s.Tokens)) }

// CopiesCap returns the supply cap and whether one is set.
func (s *Series) CopiesCap() (uint64, bool) {
	if s.Metadata.Copies == nil {
		return 0, false
	}
	return *s.Metadata.Copies, true
}

// NextEdition returns the 1-based edition number the next mint will receive.
func (s *Series) NextEdition() uint64 { return s.MintedCount() + 1 }

// Exhausted reports whether the copies cap has been reached.
func (s *Series) Exhausted() bool {
	copiesCap, ok := s.CopiesCap()
	return ok && s.MintedCount() >= copiesCap
}

// Mint applies the minting state transition and returns the new token id.
// It enforces mintability and the supply cap; minting the last available
// edition clears both the mintability flag and the price in the same
// transition, so no caller can observe an exhausted-but-priced series.
func (s *Series) Mint() (token.ID, error) {
	if !s.IsMintable {
		return "", fmt.Errorf("%w: %s", ErrNotMintable, s.ID)
	}
	copiesCap, capped := s.CopiesCap()
	minted := s.MintedCount()
	if capped && minted >= copiesCap {
		return "", fmt.Errorf("%w: %s", ErrSeriesExhausted, s.ID)
	}

	tokenID := token.MakeID(s.ID, minted+1)
	s.Tokens = append(s.Tokens, tokenID)

	if capped && minted+1 == copiesCap {
		s.IsMintable = false
		s.Price = nil
	}
	return tokenID, nil
}

// SetPrice updates the asking price and re-snapshots the transaction fee.
// A sold-out or non-mintable series cannot be priced.
func (s *Series) SetPrice(price *token.Balance, feeBps uint32) error {
	if !s.IsMintable {
		return fmt.Errorf("%w: %s", ErrNotMintable, s.ID)
	}
	s.Price = price
	s.FeeBps = feeBps
	return nil
}

// SetMintable toggles the mintability flag. Toggling to the current state is
// rejected. Re-enabling mintability does not revive a series whose cap is
// exhausted; the cap check in Mint still applies, and the cleared price must
// be set again separately.
func (s *Series) SetMintable(mintable bool) error {
	if s.IsMintable == mintable {
		return fmt.Errorf("%w: %s", ErrAlreadyMintable, s.ID)
	}
	s.IsMintable = mintable
	return nil
}

// DecreaseCopies lowers the supply cap by the given amount. The new cap may
// not fall below the minted count; when it lands exactly on the minted
// count the series transitions to exhausted, clearing mintability and price
// the same way minting the last edition does.
func (s *Series) DecreaseCopies(by uint64) error {
	if by == 0 {
		return fmt.Errorf("%w: %s", ErrZeroDecrease, s.ID)
	}
	copiesCap, capped := s.CopiesCap()
	if !capped {
		return fmt.Errorf("%w: %s", ErrNoCopiesCap, s.ID)
	}
	minted := s.MintedCount()
	if by > copiesCap || copiesCap-by < minted {
		return fmt.Errorf("%w: %s: cap %d, decrease %d, minted %d", ErrSupplyBelowMinted, s.ID, copiesCap, by, minted)
	}

	newCap := copiesCap - by
	s.Metadata.Copies = &newCap
	if newCap == minted {
		s.IsMintable = false
		s.Price = nil
	}
	return nil
}

// Clone returns an independent deep copy of the series.
func (s *Series) Clone() *Series {
	cp := *s
	if s.Price != nil {
		price := *s.Price
		cp.Price = &price
	}
	if s.Metadata.Copies != nil {
		copies := *s.Metadata.Copies
		cp.Metadata.Copies = &copies
	}
	cp.Royalty = royalty.Clone(s.Royalty)
	cp.Tokens = append([]token.ID(nil), s.Tokens...)
	return &cp
}
