package token

import "errors"

var (
	// ErrInvalidAccountID indicates an account identifier is malformed.
	ErrInvalidAccountID = errors.New("token: invalid account id")

	// ErrInvalidTokenID indicates a token identifier is not of the form
	// "<series_id>:<edition>".
	ErrInvalidTokenID = errors.New("token: invalid token id")

	// ErrTitleRequired indicates series metadata is missing the title field.
	ErrTitleRequired = errors.New("token: metadata title is required")

	// ErrHashWithoutSubject indicates a hash field is set while the field it
	// commits to is empty.
	ErrHashWithoutSubject = errors.New("token: hash field set without its subject field")

	// ErrInvalidBalance indicates a balance string could not be parsed.
	ErrInvalidBalance = errors.New("token: invalid balance")
)
