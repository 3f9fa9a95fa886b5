// Package config holds the registry's runtime configuration: storage paths,
// operator accounts, pricing limits, and the identifier scheme for new
// series. Configuration is loaded from a YAML file and validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/seriesorg/libseries-go/token"
)

// Identifier schemes for newly created series.
const (
	// IDSchemeAuto assigns auto-incrementing decimal identifiers.
	IDSchemeAuto = "auto"
	// IDSchemeCaller accepts caller-supplied identifiers.
	IDSchemeCaller = "caller"
)

// Config collects the runtime settings of a registry instance.
type Config struct {
	// DataDir is the directory holding the bolt databases.
	DataDir string `yaml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Owner is the privileged operator account.
	Owner string `yaml:"owner"`

	// Treasury receives the fee cut of every sale.
	Treasury string `yaml:"treasury"`

	// IDScheme selects how new series are identified: "auto" or "caller".
	IDScheme string `yaml:"id_scheme"`

	// MaxPrice caps series sale prices, as a decimal balance string.
	// Empty means no cap.
	MaxPrice string `yaml:"max_price"`

	// StorageByteCost is the deposit charged per stored byte, as a decimal
	// balance string.
	StorageByteCost string `yaml:"storage_byte_cost"`

	// DefaultFeeBps is the initial transaction fee in basis points.
	DefaultFeeBps uint32 `yaml:"default_fee_bps"`

	// ContractName and ContractSymbol describe the registry in its
	// contract-level metadata.
	ContractName   string `yaml:"contract_name"`
	ContractSymbol string `yaml:"contract_symbol"`

	// BaseURI is the optional media base URI in the contract metadata.
	BaseURI string `yaml:"base_uri"`
}

// DefaultConfig returns the default configuration. The data directory is
// placed under the user's home directory.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:         filepath.Join(home, ".seriesregistry"),
		LogLevel:        "info",
		IDScheme:        IDSchemeAuto,
		StorageByteCost: "10000000000000000000",
		DefaultFeeBps:   500,
		ContractName:    "Series Registry",
		ContractSymbol:  "SERIES",
	}
}

// LoadConfig reads and parses the YAML configuration file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfigFile, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML to path, creating the parent directory if
// needed.
func SaveConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ParseBalanceField parses a decimal balance string from the config,
// returning zero for the empty string.
func ParseBalanceField(s string) (token.Balance, error) {
	if s == "" {
		return token.ZeroBalance, nil
	}
	return token.ParseBalance(s)
}
