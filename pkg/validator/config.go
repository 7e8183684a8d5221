package validator

import (
	"crypto/ecdsa"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	// DefaultGasLimit is the gas ceiling for every finalizeExit transaction
	DefaultGasLimit uint64 = 200000

	// DefaultHTTPTimeout bounds the validator API request
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds everything discovery and finalization need
type Config struct {
	RPCURL          string
	APIURL          string
	ContractAddress string
	PrivateKey      string
	Network         string
	GasLimit        uint64
	HTTPTimeout     time.Duration
	ReceiptTimeout  time.Duration
}

// Validate checks the configuration needed for discovery. Signing settings
// are checked separately by ValidateSigner.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("RPC URL is required")
	}

	if c.APIURL == "" {
		return errors.New("API URL is required")
	}

	if _, err := url.ParseRequestURI(c.APIURL); err != nil {
		return errors.Wrap(err, "invalid API URL")
	}

	if !common.IsHexAddress(c.ContractAddress) {
		return errors.Errorf("invalid contract address: %q", c.ContractAddress)
	}

	if c.HTTPTimeout < 0 {
		return errors.New("HTTP timeout must not be negative")
	}

	if c.Network != "" {
		if _, err := ExpectedChainID(c.Network); err != nil {
			return err
		}
	}

	return nil
}

// ValidateSigner checks the settings only finalization needs
func (c *Config) ValidateSigner() error {
	if c.GasLimit == 0 {
		return errors.New("gas limit must be greater than zero")
	}

	if c.ReceiptTimeout < 0 {
		return errors.New("receipt timeout must not be negative")
	}

	if _, err := c.SigningKey(); err != nil {
		return err
	}

	return nil
}

// Contract returns the registry contract address
func (c *Config) Contract() common.Address {
	return common.HexToAddress(c.ContractAddress)
}

// SigningKey parses the hex private key, with or without a 0x prefix
func (c *Config) SigningKey() (*ecdsa.PrivateKey, error) {
	if c.PrivateKey == "" {
		return nil, errors.New("private key is required")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.PrivateKey), "0x"))
	if err != nil {
		// the key itself must never end up in logs
		return nil, errors.New("invalid private key")
	}

	return key, nil
}
