package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seriesorg/libseries-go/config"
	"github.com/seriesorg/libseries-go/event"
	"github.com/seriesorg/libseries-go/ownership"
	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/series"
	"github.com/seriesorg/libseries-go/token"
)

const (
	ownerAcc    = token.AccountID("owner.near")
	treasuryAcc = token.AccountID("treasury.near")
	creatorAcc  = token.AccountID("creator.near")
	buyerAcc    = token.AccountID("buyer.near")
	otherAcc    = token.AccountID("other.near")
)

type harness struct {
	c     *Contract
	bank  *MemBank
	sink  *event.MemSink
	clock *FixedClock
}

func testConfig(t *testing.T) config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Owner = string(ownerAcc)
	cfg.Treasury = string(treasuryAcc)
	cfg.StorageByteCost = "0"
	cfg.DefaultFeeBps = 500
	return cfg
}

func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := testConfig(t)
	for _, m := range mutate {
		m(&cfg)
	}

	bank := NewMemBank()
	sink := event.NewMemSink()
	clock := &FixedClock{T: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	c, err := New(cfg, Options{
		Series:  series.NewMemStore(),
		Owners:  ownership.NewMemStore(),
		Pending: NewMemPendingStore(),
		State:   NewMemStateStore(),
		Bank:    bank,
		Sink:    sink,
		Clock:   clock,
	})
	require.NoError(t, err)
	return &harness{c: c, bank: bank, sink: sink, clock: clock}
}

func balp(v uint64) *token.Balance {
	b := token.Bal(v)
	return &b
}

func uptr(v uint64) *uint64 { return &v }

// intent is the one-unit proof-of-intent call.
func intent(caller token.AccountID) Call {
	return Call{Caller: caller, Deposit: token.Bal(1)}
}

func createSeries(t *testing.T, h *harness, args CreateSeriesArgs) *SeriesView {
	t.Helper()
	view, err := h.c.CreateSeries(Call{Caller: creatorAcc, Deposit: token.Bal(1)}, args)
	require.NoError(t, err)
	return view
}

func basicSeries(price *token.Balance, copies *uint64) CreateSeriesArgs {
	return CreateSeriesArgs{
		Metadata: token.Metadata{Title: "Tsundere land", Copies: copies},
		Price:    price,
	}
}

func TestCreateSeriesAutoID(t *testing.T) {
	h := newHarness(t)

	first := createSeries(t, h, basicSeries(nil, nil))
	second := createSeries(t, h, basicSeries(nil, nil))

	assert.Equal(t, "1", first.SeriesID)
	assert.Equal(t, "2", second.SeriesID)
	assert.Equal(t, creatorAcc, first.CreatorID)
	assert.True(t, first.IsMintable)
	assert.Equal(t, uint32(500), first.FeeBps)

	// Caller-supplied ids are rejected under the auto scheme.
	_, err := h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		SeriesID: "custom",
		Metadata: token.Metadata{Title: "x"},
	})
	assert.ErrorIs(t, err, ErrSeriesIDSupplied)
}

func TestCreateSeriesCallerID(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.IDScheme = config.IDSchemeCaller })

	view := createSeries(t, h, CreateSeriesArgs{
		SeriesID: "landscapes",
		Metadata: token.Metadata{Title: "Landscapes"},
	})
	assert.Equal(t, "landscapes", view.SeriesID)

	_, err := h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		SeriesID: "landscapes",
		Metadata: token.Metadata{Title: "Landscapes"},
	})
	assert.ErrorIs(t, err, series.ErrDuplicateSeries)

	_, err = h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		Metadata: token.Metadata{Title: "x"},
	})
	assert.ErrorIs(t, err, ErrSeriesIDRequired)

	_, err = h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		SeriesID: "bad:id",
		Metadata: token.Metadata{Title: "x"},
	})
	assert.ErrorIs(t, err, token.ErrInvalidTokenID)
}

func TestCreateSeriesValidation(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.MaxPrice = "1000000" })

	_, err := h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{})
	assert.ErrorIs(t, err, token.ErrTitleRequired)

	_, err = h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		Metadata: token.Metadata{Title: "x"},
		Royalty:  royalty.Table{otherAcc: 9500},
	})
	assert.ErrorIs(t, err, royalty.ErrRoyaltyExceeded)

	// The ceiling is exclusive: a price at the cap is already too high.
	_, err = h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		Metadata: token.Metadata{Title: "x"},
		Price:    balp(1_000_000),
	})
	assert.ErrorIs(t, err, ErrPriceTooHigh)

	_, err = h.c.CreateSeries(intent(creatorAcc), CreateSeriesArgs{
		Metadata: token.Metadata{Title: "x"},
		Price:    balp(999_999),
	})
	require.NoError(t, err)
}

func TestCreateSeriesStorageCharge(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.StorageByteCost = "1" })

	// No deposit attached: nothing may be stored.
	_, err := h.c.CreateSeries(Call{Caller: creatorAcc}, basicSeries(nil, nil))
	require.Error(t, err)
	count, err := h.c.series.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	// A generous deposit is charged for the record and the rest refunded.
	attached := token.Bal(1_000_000)
	_, err = h.c.CreateSeries(Call{Caller: creatorAcc, Deposit: attached}, basicSeries(nil, nil))
	require.NoError(t, err)

	refunded := h.bank.Paid(creatorAcc)
	assert.False(t, refunded.IsZero())
	assert.Less(t, refunded.Big().Uint64(), attached.Big().Uint64())
}

func TestCreateSeriesEmitsParams(t *testing.T) {
	h := newHarness(t)
	createSeries(t, h, basicSeries(balp(10), nil))

	lines := h.sink.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"type":"nft_create_series"`)
	assert.Contains(t, lines[0], `"token_series_id":"1"`)
	assert.Contains(t, lines[0], `"creator_id":"creator.near"`)
}

func TestListSeriesPagination(t *testing.T) {
	h := newHarness(t)
	createSeries(t, h, basicSeries(nil, nil))
	createSeries(t, h, basicSeries(nil, nil))
	createSeries(t, h, basicSeries(nil, nil))

	page, err := h.c.ListSeries(1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2", page[0].SeriesID)
	assert.Equal(t, "3", page[1].SeriesID)

	_, err = h.c.ListSeries(3, 1)
	assert.ErrorIs(t, err, token.ErrOutOfBounds)

	_, err = h.c.ListSeries(0, 0)
	assert.ErrorIs(t, err, token.ErrZeroLimit)
}

func TestInsufficientStorageKeepsStateClean(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.StorageByteCost = "1000000" })

	_, err := h.c.CreateSeries(Call{Caller: creatorAcc, Deposit: token.Bal(10)}, basicSeries(nil, nil))
	require.Error(t, err)

	count, err := h.c.series.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.Empty(t, h.bank.Payments())
	assert.Empty(t, h.sink.Lines())
}
