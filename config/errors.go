package config

import "errors"

var (
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidOwner indicates the owner account id is malformed.
	ErrInvalidOwner = errors.New("config: invalid owner account")

	// ErrInvalidTreasury indicates the treasury account id is malformed.
	ErrInvalidTreasury = errors.New("config: invalid treasury account")

	// ErrInvalidIDScheme indicates the series id scheme is not recognized.
	ErrInvalidIDScheme = errors.New("config: invalid id scheme (must be \"auto\" or \"caller\")")

	// ErrInvalidMaxPrice indicates the price cap is not a decimal balance.
	ErrInvalidMaxPrice = errors.New("config: invalid max price")

	// ErrInvalidByteCost indicates the storage byte cost is not a decimal
	// balance.
	ErrInvalidByteCost = errors.New("config: invalid storage byte cost")

	// ErrInvalidDefaultFee indicates the default fee exceeds 100%.
	ErrInvalidDefaultFee = errors.New("config: invalid default fee")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigFile indicates the configuration file is malformed.
	ErrInvalidConfigFile = errors.New("config: invalid configuration file")
)
