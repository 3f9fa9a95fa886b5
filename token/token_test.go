package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSplitID(t *testing.T) {
	id := MakeID("42", 2)
	assert.Equal(t, "42:2", id)

	seriesID, edition, err := SplitID(id)
	require.NoError(t, err)
	assert.Equal(t, "42", seriesID)
	assert.Equal(t, uint64(2), edition)
}

func TestSplitID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"no delimiter", "42"},
		{"empty series", ":2"},
		{"empty edition", "42:"},
		{"non-numeric edition", "42:two"},
		{"zero edition", "42:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SplitID(tt.id)
			assert.ErrorIs(t, err, ErrInvalidTokenID)
		})
	}
}

func TestSeriesOf(t *testing.T) {
	seriesID, err := SeriesOf("naruto-7:15")
	require.NoError(t, err)
	assert.Equal(t, "naruto-7", seriesID)
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Tsundere land #2", DisplayTitle("Tsundere land", 2))
}

func TestAccountIDValid(t *testing.T) {
	valid := []string{"alice", "alice.near", "a-b_c.d1", "x0", "treasury.paras.near"}
	for _, a := range valid {
		assert.True(t, AccountID(a).Valid(), a)
	}

	invalid := []string{"", "a", "Alice", "alice..near", ".alice", "alice.", "al ice",
		"-alice", "alice-", strings.Repeat("a", 65)}
	for _, a := range invalid {
		assert.False(t, AccountID(a).Valid(), a)
	}
}

func TestAccountIDValidate(t *testing.T) {
	require.NoError(t, AccountID("alice.near").Validate())
	assert.ErrorIs(t, AccountID("..").Validate(), ErrInvalidAccountID)
}

func TestParseBalance(t *testing.T) {
	b, err := ParseBalance("1000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000", FormatBalance(b))

	_, err = ParseBalance("")
	assert.ErrorIs(t, err, ErrInvalidBalance)
	_, err = ParseBalance("12x")
	assert.ErrorIs(t, err, ErrInvalidBalance)
}

func TestMetadataValidate(t *testing.T) {
	meta := &Metadata{Title: "Tsundere land", Copies: Copies(10)}
	require.NoError(t, meta.Validate())

	assert.ErrorIs(t, (&Metadata{}).Validate(), ErrTitleRequired)
	assert.ErrorIs(t, (&Metadata{Title: "t", MediaHash: "abc"}).Validate(), ErrHashWithoutSubject)
	assert.ErrorIs(t, (&Metadata{Title: "t", ReferenceHash: "abc"}).Validate(), ErrHashWithoutSubject)
}
