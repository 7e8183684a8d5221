package cmd

import (
	"context"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ethpandaops/exit-finalizer/pkg/registry"
	"github.com/ethpandaops/exit-finalizer/pkg/validator"
)

var cfg = validator.Config{}

// flagEnv maps flag names to the environment variables that may set them
var flagEnv = map[string]string{
	"rpc":         "EXIT_FINALIZER_RPC_URL",
	"api":         "EXIT_FINALIZER_API_URL",
	"contract":    "EXIT_FINALIZER_CONTRACT",
	"private-key": "EXIT_FINALIZER_PRIVATE_KEY",
}

func addDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.RPCURL, "rpc", "", "Execution client RPC endpoint URL (env EXIT_FINALIZER_RPC_URL)")
	cmd.Flags().StringVar(&cfg.APIURL, "api", "", "Validator API endpoint URL (env EXIT_FINALIZER_API_URL)")
	cmd.Flags().StringVar(&cfg.ContractAddress, "contract", "", "Validator registry contract address (env EXIT_FINALIZER_CONTRACT)")
	cmd.Flags().StringVar(&cfg.Network, "network", "", "Expected network (mainnet or holesky); refuses to run against any other chain")
	cmd.Flags().DurationVar(&cfg.HTTPTimeout, "http-timeout", validator.DefaultHTTPTimeout, "Timeout for the validator API request")
}

func addSignerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.PrivateKey, "private-key", "", "Hex private key of the sender (env EXIT_FINALIZER_PRIVATE_KEY)")
	cmd.Flags().Uint64Var(&cfg.GasLimit, "gas-limit", validator.DefaultGasLimit, "Gas limit for each finalizeExit transaction")
	cmd.Flags().DurationVar(&cfg.ReceiptTimeout, "receipt-timeout", 0, "Maximum time to wait for each receipt (0 waits indefinitely)")
}

// applyEnv fills flags the user did not set from their environment variables
func applyEnv(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagEnv[f.Name]
		if !ok || f.Changed {
			return
		}

		value, ok := os.LookupEnv(key)
		if !ok || value == "" {
			return
		}

		if err := f.Value.Set(value); err != nil {
			log.WithError(err).Warnf("Ignoring invalid %s", key)
		}
	})
}

// rpcClient is a registry backend holding a connection
type rpcClient interface {
	registry.Backend
	Close()
}

var dialBackend = func(ctx context.Context, rawURL string) (rpcClient, error) {
	client, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// dialRegistry connects to the RPC endpoint, runs the network check and
// binds the registry contract. The caller closes the returned client.
func dialRegistry(ctx context.Context) (rpcClient, *registry.Registry, *big.Int, error) {
	client, err := dialBackend(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to connect to RPC endpoint")
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()

		return nil, nil, nil, errors.Wrap(err, "failed to connect to RPC endpoint")
	}

	if err := validator.CheckNetwork(cfg.Network, chainID); err != nil {
		client.Close()

		return nil, nil, nil, err
	}

	reg, err := registry.New(cfg.Contract(), client)
	if err != nil {
		client.Close()

		return nil, nil, nil, err
	}

	return client, reg, chainID, nil
}
