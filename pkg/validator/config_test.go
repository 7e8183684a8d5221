package validator

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		RPCURL:          "http://localhost:8545",
		APIURL:          "https://example.org/api/validators",
		ContractAddress: "0x00000000000000000000000000000000000000ff",
		GasLimit:        DefaultGasLimit,
		HTTPTimeout:     DefaultHTTPTimeout,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		expectError bool
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:        "missing rpc",
			modify:      func(c *Config) { c.RPCURL = "" },
			expectError: true,
		},
		{
			name:        "missing api",
			modify:      func(c *Config) { c.APIURL = "" },
			expectError: true,
		},
		{
			name:        "relative api url",
			modify:      func(c *Config) { c.APIURL = "validators" },
			expectError: true,
		},
		{
			name:        "invalid contract",
			modify:      func(c *Config) { c.ContractAddress = "0xYourValidatorRegistryContractAddress" },
			expectError: true,
		},
		{
			name:        "negative http timeout",
			modify:      func(c *Config) { c.HTTPTimeout = -time.Second },
			expectError: true,
		},
		{
			name:   "known network",
			modify: func(c *Config) { c.Network = "holesky" },
		},
		{
			name:        "unknown network",
			modify:      func(c *Config) { c.Network = "ropsten" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConfigValidateSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	keyHex := hex.EncodeToString(crypto.FromECDSA(key))

	tests := []struct {
		name        string
		modify      func(c *Config)
		expectError bool
	}{
		{
			name:   "plain hex key",
			modify: func(c *Config) { c.PrivateKey = keyHex },
		},
		{
			name:   "prefixed key with whitespace",
			modify: func(c *Config) { c.PrivateKey = " 0x" + keyHex + "\n" },
		},
		{
			name:        "missing key",
			modify:      func(c *Config) { c.PrivateKey = "" },
			expectError: true,
		},
		{
			name:        "malformed key",
			modify:      func(c *Config) { c.PrivateKey = "your_private_key" },
			expectError: true,
		},
		{
			name: "zero gas limit",
			modify: func(c *Config) {
				c.PrivateKey = keyHex
				c.GasLimit = 0
			},
			expectError: true,
		},
		{
			name: "negative receipt timeout",
			modify: func(c *Config) {
				c.PrivateKey = keyHex
				c.ReceiptTimeout = -time.Second
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.ValidateSigner()
			if tt.expectError {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)

			parsed, err := cfg.SigningKey()
			require.NoError(t, err)
			assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(parsed.PublicKey))
		})
	}
}

func TestSigningKeyErrorHidesKey(t *testing.T) {
	cfg := validConfig()
	cfg.PrivateKey = "not-a-real-secret-value"

	_, err := cfg.SigningKey()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), cfg.PrivateKey)
}

func TestConfigContract(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, common.HexToAddress("0xff"), cfg.Contract())
}
