package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seriesorg/libseries-go/royalty"
	"github.com/seriesorg/libseries-go/token"
)

func newTestSeries(id string, copies uint64, price uint64) *Series {
	meta := token.Metadata{Title: "Tsundere land", Copies: token.Copies(copies)}
	var p *token.Balance
	if price > 0 {
		b := token.Bal(price)
		p = &b
	}
	return New(id, meta, "creator.near", p, royalty.Table{"royalty.near": 1000}, 500)
}

func TestNew(t *testing.T) {
	s := newTestSeries("1", 10, 100)
	assert.True(t, s.IsMintable)
	assert.Equal(t, uint64(0), s.MintedCount())
	assert.Equal(t, uint64(1), s.NextEdition())
	assert.Equal(t, uint32(500), s.FeeBps)
	assert.False(t, s.Exhausted())
}

func TestMint(t *testing.T) {
	s := newTestSeries("1", 10, 0)

	id, err := s.Mint()
	require.NoError(t, err)
	assert.Equal(t, "1:1", id)

	id, err = s.Mint()
	require.NoError(t, err)
	assert.Equal(t, "1:2", id)
	assert.Equal(t, uint64(2), s.MintedCount())
	assert.True(t, s.IsMintable)
}

func TestMint_ExhaustionTransition(t *testing.T) {
	s := newTestSeries("1", 2, 100)

	_, err := s.Mint()
	require.NoError(t, err)
	assert.True(t, s.IsMintable)
	assert.NotNil(t, s.Price)

	// Minting the last edition clears mintability and price atomically.
	id, err := s.Mint()
	require.NoError(t, err)
	assert.Equal(t, "1:2", id)
	assert.False(t, s.IsMintable)
	assert.Nil(t, s.Price)
	assert.True(t, s.Exhausted())

	_, err = s.Mint()
	assert.ErrorIs(t, err, ErrNotMintable)
}

func TestMint_NotMintable(t *testing.T) {
	s := newTestSeries("1", 10, 0)
	require.NoError(t, s.SetMintable(false))

	_, err := s.Mint()
	assert.ErrorIs(t, err, ErrNotMintable)
}

func TestMint_Unbounded(t *testing.T) {
	s := New("1", token.Metadata{Title: "open"}, "creator.near", nil, nil, 500)
	for i := 0; i < 100; i++ {
		_, err := s.Mint()
		require.NoError(t, err)
	}
	assert.True(t, s.IsMintable)
}

func TestSetPrice(t *testing.T) {
	s := newTestSeries("1", 10, 0)
	price := token.Bal(777)
	require.NoError(t, s.SetPrice(&price, 250))
	assert.Equal(t, token.Bal(777), *s.Price)
	assert.Equal(t, uint32(250), s.FeeBps)

	// Clearing the price keeps the snapshot refresh.
	require.NoError(t, s.SetPrice(nil, 100))
	assert.Nil(t, s.Price)
	assert.Equal(t, uint32(100), s.FeeBps)
}

func TestSetPrice_NotMintable(t *testing.T) {
	s := newTestSeries("1", 1, 0)
	_, err := s.Mint()
	require.NoError(t, err)

	price := token.Bal(1)
	assert.ErrorIs(t, s.SetPrice(&price, 500), ErrNotMintable)
}

func TestSetMintable(t *testing.T) {
	s := newTestSeries("1", 10, 0)
	assert.ErrorIs(t, s.SetMintable(true), ErrAlreadyMintable)

	require.NoError(t, s.SetMintable(false))
	assert.False(t, s.IsMintable)
	require.NoError(t, s.SetMintable(true))
	assert.True(t, s.IsMintable)
}

func TestDecreaseCopies(t *testing.T) {
	s := newTestSeries("1", 10, 100)
	_, err := s.Mint()
	require.NoError(t, err)

	require.NoError(t, s.DecreaseCopies(4))
	copiesCap, ok := s.CopiesCap()
	require.True(t, ok)
	assert.Equal(t, uint64(6), copiesCap)
	assert.True(t, s.IsMintable)
}

func TestDecreaseCopies_ToMinted(t *testing.T) {
	s := newTestSeries("1", 10, 100)
	_, err := s.Mint()
	require.NoError(t, err)
	_, err = s.Mint()
	require.NoError(t, err)

	// Landing exactly on the minted count exhausts the series.
	require.NoError(t, s.DecreaseCopies(8))
	assert.False(t, s.IsMintable)
	assert.Nil(t, s.Price)
	assert.True(t, s.Exhausted())
}

func TestDecreaseCopies_BelowMinted(t *testing.T) {
	s := newTestSeries("1", 10, 100)
	for i := 0; i < 3; i++ {
		_, err := s.Mint()
		require.NoError(t, err)
	}

	err := s.DecreaseCopies(8)
	assert.ErrorIs(t, err, ErrSupplyBelowMinted)
	// Failed decrease leaves the cap untouched.
	copiesCap, _ := s.CopiesCap()
	assert.Equal(t, uint64(10), copiesCap)
}

func TestDecreaseCopies_Validation(t *testing.T) {
	s := newTestSeries("1", 10, 0)
	assert.ErrorIs(t, s.DecreaseCopies(0), ErrZeroDecrease)

	open := New("1", token.Metadata{Title: "open"}, "creator.near", nil, nil, 0)
	assert.ErrorIs(t, open.DecreaseCopies(1), ErrNoCopiesCap)
}

func TestClone(t *testing.T) {
	s := newTestSeries("1", 10, 100)
	_, err := s.Mint()
	require.NoError(t, err)

	cp := s.Clone()
	cp.Royalty["other.near"] = 1
	cp.Tokens = append(cp.Tokens, "1:99")
	*cp.Price = token.Bal(1)
	*cp.Metadata.Copies = 1

	assert.NotContains(t, s.Royalty, token.AccountID("other.near"))
	assert.Len(t, s.Tokens, 1)
	assert.Equal(t, token.Bal(100), *s.Price)
	assert.Equal(t, uint64(10), *s.Metadata.Copies)
}
