// Command shmr curates stellar-to-halo and black hole-to-halo mass
// relation datasets in the Galacticus HDF5 container format.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shmr",
	Short: "Curate Galacticus mass relation datasets",
	Long: `shmr builds, validates and inspects stellar-to-halo and black
hole-to-halo mass relation datasets in the HDF5 container format consumed
by Galacticus (https://github.com/galacticusorg/galacticus).

Datasets can be generated from parametric models from the literature or
assembled from published simulation data releases.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(plotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
