// Package token defines the shared primitives of the series ledger: account
// identifiers, 128-bit balances, token identifiers derived from a series and
// an edition number, and the shared token metadata record.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// TokenDelimiter separates the series id from the edition number in a
	// token id, e.g. "42:2" where 42 is the series and 2 is the edition.
	TokenDelimiter = ":"

	// TitleDelimiter separates the series title from the edition number in a
	// token's display title, e.g. "Title #2".
	TitleDelimiter = " #"

	// EditionDelimiter separates the edition from the copies cap in display
	// strings, e.g. "2/10" where 10 is max copies.
	EditionDelimiter = "/"
)

// SeriesID identifies a token series.
type SeriesID = string

// ID identifies a single minted token: "<series_id>:<edition>".
type ID = string

// MakeID composes a token id from a series id and a 1-based edition number.
func MakeID(seriesID SeriesID, edition uint64) ID {
	return seriesID + TokenDelimiter + strconv.FormatUint(edition, 10)
}

// SplitID decomposes a token id into its series id and edition number.
func SplitID(tokenID ID) (SeriesID, uint64, error) {
	idx := strings.Index(tokenID, TokenDelimiter)
	if idx <= 0 || idx == len(tokenID)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidTokenID, tokenID)
	}
	edition, err := strconv.ParseUint(tokenID[idx+1:], 10, 64)
	if err != nil || edition == 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidTokenID, tokenID)
	}
	return tokenID[:idx], edition, nil
}

// SeriesOf returns the series id embedded in a token id.
func SeriesOf(tokenID ID) (SeriesID, error) {
	seriesID, _, err := SplitID(tokenID)
	return seriesID, err
}

// DisplayTitle composes the per-token title from the series title and the
// edition number, e.g. "Tsundere land #2".
func DisplayTitle(seriesTitle string, edition uint64) string {
	return seriesTitle + TitleDelimiter + strconv.FormatUint(edition, 10)
}
