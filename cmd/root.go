package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/exit-finalizer/pkg/validator"
)

var (
	log = logrus.New()

	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "exit-finalizer",
	Short: "Finalizes exits of validators in the EXITING state.",
	Long: `Finalizes exits of validators in the EXITING state.

Validators are discovered through the validator API, falling back to the
registry contract's getValidators view when the API yields none, and a
finalizeExit transaction is submitted for each of them in turn.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		log.SetLevel(lvl)

		return validator.SetLogLevel(logLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// initCommon loads a .env file from the working directory if one exists and
// fills unset flags from the environment.
func initCommon(cmd *cobra.Command) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	applyEnv(cmd)
}
