package config

import (
	"fmt"
	"strings"

	"github.com/seriesorg/libseries-go/fee"
	"github.com/seriesorg/libseries-go/token"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if !token.AccountID(cfg.Owner).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, cfg.Owner)
	}
	if !token.AccountID(cfg.Treasury).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTreasury, cfg.Treasury)
	}

	if cfg.IDScheme != IDSchemeAuto && cfg.IDScheme != IDSchemeCaller {
		return fmt.Errorf("%w: %q", ErrInvalidIDScheme, cfg.IDScheme)
	}

	if _, err := ParseBalanceField(cfg.MaxPrice); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMaxPrice, cfg.MaxPrice)
	}
	if _, err := ParseBalanceField(cfg.StorageByteCost); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidByteCost, cfg.StorageByteCost)
	}

	if cfg.DefaultFeeBps > fee.MaxBps {
		return fmt.Errorf("%w: %d bps", ErrInvalidDefaultFee, cfg.DefaultFeeBps)
	}

	return nil
}
