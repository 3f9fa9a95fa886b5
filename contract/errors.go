package contract

import "errors"

var (
	// ErrOwnerOnly is returned when a privileged operation is called by an
	// account other than the contract owner.
	ErrOwnerOnly = errors.New("contract: owner only")

	// ErrNotCreator is returned when a series operation is called by an
	// account other than the series creator.
	ErrNotCreator = errors.New("contract: caller is not the series creator")

	// ErrNotForSale is returned when buying from a series with no price.
	ErrNotForSale = errors.New("contract: series is not for sale")

	// ErrInsufficientDeposit is returned when the attached deposit does not
	// cover the price of a purchase.
	ErrInsufficientDeposit = errors.New("contract: insufficient deposit")

	// ErrIntentDepositRequired is returned when an authorization-sensitive
	// operation is called without the exact one-unit deposit.
	ErrIntentDepositRequired = errors.New("contract: requires attached deposit of exactly 1")

	// ErrPriceTooHigh is returned when a series price reaches or exceeds
	// the configured ceiling.
	ErrPriceTooHigh = errors.New("contract: price higher than maximum allowed")

	// ErrZeroPrice is returned when a series price of zero is supplied; a
	// series is taken off sale by clearing its price instead.
	ErrZeroPrice = errors.New("contract: price must be positive")

	// ErrPendingNotFound is returned when resolving an unknown deferred
	// transfer.
	ErrPendingNotFound = errors.New("contract: pending transfer not found")

	// ErrSeriesIDSupplied is returned when a caller supplies a series id
	// under the auto-increment id scheme.
	ErrSeriesIDSupplied = errors.New("contract: series id is assigned automatically")

	// ErrSeriesIDRequired is returned when no series id is supplied under
	// the caller-supplied id scheme.
	ErrSeriesIDRequired = errors.New("contract: series id is required")

	// ErrNoTokens is returned when a batch mint asks for zero tokens.
	ErrNoTokens = errors.New("contract: amount must be at least 1")
)
