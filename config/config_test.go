package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Owner = "owner.near"
	cfg.Treasury = "treasury.near"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, IDSchemeAuto, cfg.IDScheme)
	assert.Equal(t, uint32(500), cfg.DefaultFeeBps)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.StorageByteCost)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	original := validConfig()
	original.LogLevel = "debug"
	original.IDScheme = IDSchemeCaller
	original.MaxPrice = "1000000000000000000000000"

	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(validConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"bad owner", func(c *Config) { c.Owner = "UPPER" }, ErrInvalidOwner},
		{"empty owner", func(c *Config) { c.Owner = "" }, ErrInvalidOwner},
		{"bad treasury", func(c *Config) { c.Treasury = "x" }, ErrInvalidTreasury},
		{"bad id scheme", func(c *Config) { c.IDScheme = "random" }, ErrInvalidIDScheme},
		{"bad max price", func(c *Config) { c.MaxPrice = "12abc" }, ErrInvalidMaxPrice},
		{"bad byte cost", func(c *Config) { c.StorageByteCost = "-1" }, ErrInvalidByteCost},
		{"fee above 100%", func(c *Config) { c.DefaultFeeBps = 10001 }, ErrInvalidDefaultFee},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), tc.want)
		})
	}
}

func TestParseBalanceField(t *testing.T) {
	zero, err := ParseBalanceField("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	v, err := ParseBalanceField("123456789")
	require.NoError(t, err)
	assert.Equal(t, "123456789", v.String())
}
