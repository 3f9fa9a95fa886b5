package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seriesorg/libseries-go/config"
	"github.com/seriesorg/libseries-go/deposit"
	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/series"
	"github.com/seriesorg/libseries-go/token"
)

// CreateSeriesArgs are the caller-supplied parameters of CreateSeries.
type CreateSeriesArgs struct {
	// SeriesID is required under the caller-supplied id scheme and must be
	// absent under the auto-increment scheme.
	SeriesID token.SeriesID
	Metadata token.Metadata
	Royalty  royalty.Table
	Price    *token.Balance
}

// CreateSeries registers a new series. The caller becomes its creator, the
// royalty table is frozen, and the current transaction fee is snapshotted
// onto the series. Storage growth is charged against the attached deposit.
func (c *Contract) CreateSeries(call Call, args CreateSeriesArgs) (*SeriesView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := call.Caller.Validate(); err != nil {
		return nil, err
	}
	if err := args.Metadata.Validate(); err != nil {
		return nil, err
	}
	if err := royalty.Validate(args.Royalty); err != nil {
		return nil, err
	}
	if err := c.checkPrice(args.Price); err != nil {
		return nil, err
	}

	id, err := c.assignSeriesID(args.SeriesID)
	if err != nil {
		return nil, err
	}
	exists, err := c.series.Has(id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", series.ErrDuplicateSeries, id)
	}

	feeBps, err := c.resolveFee()
	if err != nil {
		return nil, err
	}

	s := series.New(id, args.Metadata, call.Caller, args.Price, args.Royalty, feeBps)
	grown, err := deposit.Size(s)
	if err != nil {
		return nil, err
	}
	refund, err := c.storageRefund(call, token.ZeroBalance, grown)
	if err != nil {
		return nil, err
	}

	if err := c.series.Create(s); err != nil {
		return nil, err
	}

	c.sink.EmitParams("nft_create_series", createSeriesParams(s))
	if err := c.bank.Pay(call.Caller, refund); err != nil {
		return nil, err
	}
	return newSeriesView(s), nil
}

// SetSeriesPrice sets or clears the sale price of a mintable series. The
// transaction-fee snapshot on the series is refreshed. Creator only, with
// the one-unit intent deposit.
func (c *Contract) SetSeriesPrice(call Call, id token.SeriesID, price *token.Balance) (*SeriesView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return nil, err
	}
	s, err := c.getSeries(id)
	if err != nil {
		return nil, err
	}
	if err := requireCreator(call, s); err != nil {
		return nil, err
	}
	if err := c.checkPrice(price); err != nil {
		return nil, err
	}

	feeBps, err := c.resolveFee()
	if err != nil {
		return nil, err
	}
	if err := s.SetPrice(price, feeBps); err != nil {
		return nil, err
	}
	if err := c.series.Put(s); err != nil {
		return nil, err
	}

	c.sink.EmitParams("nft_set_series_price", setPriceParams(s))
	return newSeriesView(s), nil
}

// SetSeriesMintable toggles minting for a series. Creator only, with the
// one-unit intent deposit. Setting the current state is rejected.
func (c *Contract) SetSeriesMintable(call Call, id token.SeriesID, mintable bool) (*SeriesView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return nil, err
	}
	s, err := c.getSeries(id)
	if err != nil {
		return nil, err
	}
	if err := requireCreator(call, s); err != nil {
		return nil, err
	}

	if err := s.SetMintable(mintable); err != nil {
		return nil, err
	}
	if err := c.series.Put(s); err != nil {
		return nil, err
	}

	c.sink.EmitParams("nft_set_series_mintable", struct {
		SeriesID   token.SeriesID `json:"token_series_id"`
		IsMintable bool           `json:"is_mintable"`
	}{SeriesID: s.ID, IsMintable: s.IsMintable})
	return newSeriesView(s), nil
}

// DecreaseCopies lowers the supply cap of a series by the given amount.
// Lowering the cap to exactly the minted count closes the series the same
// way minting the last edition does. Creator only, with the one-unit intent
// deposit.
func (c *Contract) DecreaseCopies(call Call, id token.SeriesID, by uint64) (*SeriesView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := requireIntent(call); err != nil {
		return nil, err
	}
	s, err := c.getSeries(id)
	if err != nil {
		return nil, err
	}
	if err := requireCreator(call, s); err != nil {
		return nil, err
	}

	if err := s.DecreaseCopies(by); err != nil {
		return nil, err
	}
	if err := c.series.Put(s); err != nil {
		return nil, err
	}

	c.sink.EmitParams("nft_decrease_series_copies", struct {
		SeriesID token.SeriesID `json:"token_series_id"`
		Copies   *uint64        `json:"copies"`
	}{SeriesID: s.ID, Copies: s.Metadata.Copies})
	return newSeriesView(s), nil
}

// assignSeriesID resolves the id of a new series per the configured scheme.
func (c *Contract) assignSeriesID(supplied token.SeriesID) (token.SeriesID, error) {
	switch c.cfg.IDScheme {
	case config.IDSchemeCaller:
		if supplied == "" {
			return "", ErrSeriesIDRequired
		}
		if strings.Contains(supplied, token.TokenDelimiter) {
			return "", fmt.Errorf("%w: %q", token.ErrInvalidTokenID, supplied)
		}
		return supplied, nil
	default:
		if supplied != "" {
			return "", fmt.Errorf("%w: %q", ErrSeriesIDSupplied, supplied)
		}
		count, err := c.series.Count()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(count+1, 10), nil
	}
}

// checkPrice enforces the configured price ceiling. A zero cap means
// uncapped; otherwise the price must stay strictly below the cap. Prices
// must be positive; a series is taken off sale by clearing the price, not
// by setting it to zero.
func (c *Contract) checkPrice(price *token.Balance) error {
	if price == nil {
		return nil
	}
	if price.IsZero() {
		return ErrZeroPrice
	}
	if c.maxPrice.IsZero() {
		return nil
	}
	if price.Cmp(c.maxPrice) >= 0 {
		return fmt.Errorf("%w: %s", ErrPriceTooHigh, token.FormatBalance(*price))
	}
	return nil
}

func createSeriesParams(s *series.Series) any {
	return struct {
		SeriesID  token.SeriesID  `json:"token_series_id"`
		Metadata  token.Metadata  `json:"token_metadata"`
		CreatorID token.AccountID `json:"creator_id"`
		Price     string          `json:"price,omitempty"`
		Royalty   royalty.Table   `json:"royalty,omitempty"`
	}{
		SeriesID:  s.ID,
		Metadata:  s.Metadata,
		CreatorID: s.CreatorID,
		Price:     priceString(s.Price),
		Royalty:   s.Royalty,
	}
}

func setPriceParams(s *series.Series) any {
	return struct {
		SeriesID token.SeriesID `json:"token_series_id"`
		Price    string         `json:"price,omitempty"`
	}{SeriesID: s.ID, Price: priceString(s.Price)}
}

func priceString(p *token.Balance) string {
	if p == nil {
		return ""
	}
	return token.FormatBalance(*p)
}
