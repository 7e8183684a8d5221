package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/exit-finalizer/pkg/validator"
)

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Finalizes the exit of every validator in the EXITING state",
	Long: `Discovers validators in the EXITING state and submits a finalizeExit
transaction for each of them, one at a time, in discovery order.

A failure for one validator is logged and does not stop the others. The
command exits successfully whether zero or many validators were processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		initCommon(cmd)

		return runFinalize(cmd)
	},
}

func init() {
	rootCmd.AddCommand(finalizeCmd)

	addDiscoveryFlags(finalizeCmd)
	addSignerFlags(finalizeCmd)
}

func runFinalize(cmd *cobra.Command) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if err := cfg.ValidateSigner(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	key, err := cfg.SigningKey()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	client, reg, chainID, err := dialRegistry(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	api := validator.NewValidatorAPI(cfg.APIURL, cfg.HTTPTimeout)
	discoverer := validator.NewDiscoverer(api, reg)
	finalizer := validator.NewFinalizer(client, reg, key, chainID, cfg.GasLimit, cfg.ReceiptTimeout)

	validator.Run(ctx, discoverer, finalizer)

	return nil
}
