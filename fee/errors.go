package fee

import "errors"

var (
	// ErrFeeTooHigh indicates a fee above 10000 basis points.
	ErrFeeTooHigh = errors.New("fee: fee exceeds 10000 basis points")

	// ErrStartNotFuture indicates a scheduled fee change whose start time is
	// not strictly after the current time.
	ErrStartNotFuture = errors.New("fee: start time must be in the future")
)
