package validator

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm/v5/config/params"
)

// ExpectedChainID returns the execution chain ID of a named network
func ExpectedChainID(network string) (*big.Int, error) {
	var cfg *params.BeaconChainConfig

	switch network {
	case "mainnet":
		cfg = params.MainnetConfig()
	case "holesky":
		cfg = params.HoleskyConfig()
	default:
		return nil, errors.Errorf("unknown network: %s", network)
	}

	return new(big.Int).SetUint64(cfg.DepositChainID), nil
}

// CheckNetwork fails when the RPC endpoint's chain ID does not belong to the
// named network. An empty network name disables the check.
func CheckNetwork(network string, chainID *big.Int) error {
	if network == "" {
		return nil
	}

	expected, err := ExpectedChainID(network)
	if err != nil {
		return err
	}

	if expected.Cmp(chainID) != 0 {
		return errors.Errorf("RPC endpoint is on chain %s, expected %s for %s", chainID, expected, network)
	}

	log.WithField("network", network).WithField("chain_id", chainID).Debug("Network check passed")

	return nil
}
