package series

import "errors"

var (
	// ErrSeriesNotFound indicates the referenced series does not exist.
	ErrSeriesNotFound = errors.New("series: series not found")

	// ErrDuplicateSeries indicates a series creation with an identifier that
	// is already assigned.
	ErrDuplicateSeries = errors.New("series: duplicate series id")

	// ErrNotMintable indicates an operation that requires a mintable series.
	ErrNotMintable = errors.New("series: series is not mintable")

	// ErrAlreadyMintable indicates a mintability toggle to the current state.
	ErrAlreadyMintable = errors.New("series: series already in requested mintable state")

	// ErrSeriesExhausted indicates a mint against a series whose copies cap
	// has been reached.
	ErrSeriesExhausted = errors.New("series: series supply maxed")

	// ErrSupplyBelowMinted indicates a copies decrease below the number of
	// editions already minted.
	ErrSupplyBelowMinted = errors.New("series: cannot decrease copies below minted supply")

	// ErrNoCopiesCap indicates a copies decrease on a series with unbounded
	// supply.
	ErrNoCopiesCap = errors.New("series: series has no copies cap")

	// ErrZeroDecrease indicates a copies decrease of zero.
	ErrZeroDecrease = errors.New("series: decrease must be at least 1")
)
