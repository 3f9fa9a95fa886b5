package contract

import (
	"strconv"

	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/series"
	"github.com/seriesorg/libseries-go/token"
)

// SeriesView is the external JSON shape of a series.
type SeriesView struct {
	SeriesID   token.SeriesID  `json:"token_series_id"`
	Metadata   token.Metadata  `json:"token_metadata"`
	CreatorID  token.AccountID `json:"creator_id"`
	Price      string          `json:"price,omitempty"`
	IsMintable bool            `json:"is_mintable"`
	Royalty    royalty.Table   `json:"royalty,omitempty"`
	FeeBps     uint32          `json:"transaction_fee_bps"`
}

func newSeriesView(s *series.Series) *SeriesView {
	return &SeriesView{
		SeriesID:   s.ID,
		Metadata:   s.Metadata,
		CreatorID:  s.CreatorID,
		Price:      priceString(s.Price),
		IsMintable: s.IsMintable,
		Royalty:    royalty.Clone(s.Royalty),
		FeeBps:     s.FeeBps,
	}
}

// TokenView is the external JSON shape of a minted token: the series
// metadata specialized to one edition.
type TokenView struct {
	TokenID   token.ID                   `json:"token_id"`
	OwnerID   token.AccountID            `json:"owner_id"`
	Metadata  token.Metadata             `json:"metadata"`
	Approvals map[token.AccountID]uint64 `json:"approved_account_ids,omitempty"`
}

// FeeView is the external JSON shape of the transaction-fee schedule.
type FeeView struct {
	CurrentBps uint32 `json:"current_fee_bps"`
	PendingBps uint32 `json:"pending_fee_bps,omitempty"`
	// StartsAt is the pending change's activation time in unix
	// milliseconds, empty when no change is pending.
	StartsAt string `json:"starts_at,omitempty"`
}

// Token returns the view of a minted token: the series metadata with the
// edition number appended to the title and the mint timestamp filled in.
func (c *Contract) Token(tokenID token.ID) (*TokenView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokenView(tokenID)
}

func (c *Contract) tokenView(tokenID token.ID) (*TokenView, error) {
	seriesID, edition, err := token.SplitID(tokenID)
	if err != nil {
		return nil, err
	}
	rec, err := c.owners.Get(tokenID)
	if err != nil {
		return nil, err
	}
	s, err := c.getSeries(seriesID)
	if err != nil {
		return nil, err
	}

	meta := s.Metadata
	meta.Title = token.DisplayTitle(s.Metadata.Title, edition)
	meta.IssuedAt = rec.IssuedAt

	var approvals map[token.AccountID]uint64
	if len(rec.Approvals) > 0 {
		approvals = make(map[token.AccountID]uint64, len(rec.Approvals))
		for k, v := range rec.Approvals {
			approvals[k] = v
		}
	}
	return &TokenView{
		TokenID:   tokenID,
		OwnerID:   rec.OwnerID,
		Metadata:  meta,
		Approvals: approvals,
	}, nil
}

// GetSeries returns the view of one series.
func (c *Contract) GetSeries(id token.SeriesID) (*SeriesView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.getSeries(id)
	if err != nil {
		return nil, err
	}
	return newSeriesView(s), nil
}

// ListSeries pages over all series in creation order.
func (c *Contract) ListSeries(fromIndex, limit uint64) ([]*SeriesView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.series.List(fromIndex, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*SeriesView, 0, len(all))
	for _, s := range all {
		views = append(views, newSeriesView(s))
	}
	return views, nil
}

// SupplyForSeries returns how many editions of a series have been minted,
// burned editions included.
func (c *Contract) SupplyForSeries(id token.SeriesID) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.getSeries(id)
	if err != nil {
		return 0, err
	}
	return s.MintedCount(), nil
}

// TokensBySeries pages over the editions of a series in mint order. Editions
// burned since minting are skipped in the output, so a page may come back
// shorter than limit.
func (c *Contract) TokensBySeries(id token.SeriesID, fromIndex, limit uint64) ([]*TokenView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.getSeries(id)
	if err != nil {
		return nil, err
	}
	if err := token.CheckPage(fromIndex, limit, s.MintedCount()); err != nil {
		return nil, err
	}

	end := fromIndex + limit
	if end > s.MintedCount() {
		end = s.MintedCount()
	}
	views := make([]*TokenView, 0, end-fromIndex)
	for _, tokenID := range s.Tokens[fromIndex:end] {
		view, err := c.tokenView(tokenID)
		if err != nil {
			continue // burned
		}
		views = append(views, view)
	}
	return views, nil
}

// TokensForOwner pages over an account's tokens.
func (c *Contract) TokensForOwner(owner token.AccountID, fromIndex, limit uint64) ([]*TokenView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.owners.TokensForOwner(owner, fromIndex, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*TokenView, 0, len(ids))
	for _, tokenID := range ids {
		view, err := c.tokenView(tokenID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Tokens pages over every live token on the contract.
func (c *Contract) Tokens(fromIndex, limit uint64) ([]*TokenView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.owners.List(fromIndex, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*TokenView, 0, len(ids))
	for _, tokenID := range ids {
		view, err := c.tokenView(tokenID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// SupplyForOwner returns how many tokens an account holds.
func (c *Contract) SupplyForOwner(owner token.AccountID) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owners.SupplyForOwner(owner)
}

// TotalSupply returns the number of live tokens.
func (c *Contract) TotalSupply() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owners.TotalSupply()
}

// GetFee returns the fee schedule, promoting a due pending change first.
func (c *Contract) GetFee() (*FeeView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.resolveFee()
	if err != nil {
		return nil, err
	}
	view := &FeeView{CurrentBps: current}
	if p := c.state.Fee.Pending; p != nil {
		view.PendingBps = p.Bps
		view.StartsAt = strconv.FormatInt(p.StartsAt.UnixMilli(), 10)
	}
	return view, nil
}

// Owner returns the privileged operator account.
func (c *Contract) Owner() token.AccountID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.OwnerID
}

// Treasury returns the fee treasury account.
func (c *Contract) Treasury() token.AccountID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.TreasuryID
}

// ContractMeta returns the contract-level metadata.
func (c *Contract) ContractMeta() Metadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Meta
}
