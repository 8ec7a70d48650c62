package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/galacticus-data/shmr-datasets/galacticus"
	"github.com/galacticus-data/shmr-datasets/internal/relplot"
)

var plotCmd = &cobra.Command{
	Use:   "plot --redshift z <file>...",
	Short: "Plot a comparison of SHMR datasets at a target redshift",
	Long: `Plots the stellar-to-halo mass relation of each file at the target
redshift on shared log-log axes. Files without an interval within the
redshift tolerance are skipped with a warning; black hole relation files
are not plottable and are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlot,
}

var (
	plotRedshift  float64
	plotTolerance float64
	plotOutput    string
)

func init() {
	plotCmd.Flags().Float64VarP(&plotRedshift, "redshift", "z", 0.1, "target redshift")
	plotCmd.Flags().Float64Var(&plotTolerance, "tolerance", relplot.DefaultTolerance, "maximum |interval center - redshift|")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "shmr_comparison.png", "output image")
}

func runPlot(cmd *cobra.Command, args []string) error {
	var series []relplot.Series
	for _, path := range args {
		kind, err := galacticus.DetectKind(path)
		if err != nil {
			return err
		}
		if kind != galacticus.KindSHMR {
			logger.Warn("skipping non-SHMR file",
				zap.String("path", path),
				zap.String("kind", string(kind)))
			continue
		}

		data, err := galacticus.LoadSHMR(path)
		if err != nil {
			return err
		}
		s, ok := relplot.FromSHMR(data, plotRedshift, plotTolerance)
		if !ok {
			logger.Warn("no interval near target redshift",
				zap.String("path", path),
				zap.Float64("redshift", plotRedshift))
			continue
		}
		series = append(series, s)
	}

	if err := relplot.Comparison(series, plotRedshift, plotOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d dataset(s))\n", plotOutput, len(series))
	return nil
}
