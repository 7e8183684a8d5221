package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/exit-finalizer/pkg/validator"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Lists validators waiting for their exit to be finalized",
	Long: `Lists validators in the EXITING state without submitting anything.

The validator API is queried first; the registry contract is only read when
the API yields no exiting validators.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		initCommon(cmd)

		if err := cfg.Validate(); err != nil {
			return err
		}

		client, reg, _, err := dialRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		api := validator.NewValidatorAPI(cfg.APIURL, cfg.HTTPTimeout)
		result := validator.NewDiscoverer(api, reg).Discover(cmd.Context())

		if len(result.Addresses) == 0 {
			log.Info("No validators with status 3 (EXITING) found.")

			return nil
		}

		log.WithField("source", result.Source).Infof("Found %d exiting validators", len(result.Addresses))

		for _, address := range result.Addresses {
			fmt.Println(address)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	addDiscoveryFlags(discoverCmd)
}
