package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/galacticus-data/shmr-datasets/galacticus"
	"github.com/galacticus-data/shmr-datasets/relation"
	"github.com/galacticus-data/shmr-datasets/relation/models"
	"github.com/galacticus-data/shmr-datasets/sources/trinity"
	"github.com/galacticus-data/shmr-datasets/sources/universemachine"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dataset from a model or a published data release",
}

var behroozi2010Cmd = &cobra.Command{
	Use:   "behroozi2010",
	Short: "Tabulate the Behroozi et al. (2010) relation over z = 0-4",
	Long: `Tabulates the abundance matching relation of Behroozi et al. 2010,
ApJ, 717, 379 (arXiv:1001.0015) on 40 redshift intervals between z=0 and
z=4, with the WMAP7 cosmology adopted by that work.`,
	RunE: runBehroozi2010,
}

var trinityCmd = &cobra.Command{
	Use:   "trinity",
	Short: "Build the TRINITY black hole mass dataset from its fit table",
	RunE:  runTrinity,
}

var universemachineCmd = &cobra.Command{
	Use:   "universemachine",
	Short: "Build the UniverseMachine DR1 dataset, downloading it if needed",
	RunE:  runUniverseMachine,
}

var (
	behroozi2010Output    string
	trinityInput          string
	trinityOutput         string
	universemachineData   string
	universemachineOutput string
)

func init() {
	behroozi2010Cmd.Flags().StringVarP(&behroozi2010Output, "output", "o", "behroozi2010_parametric.hdf5", "output file")

	trinityCmd.Flags().StringVarP(&trinityInput, "input", "i", "", "TRINITY median fit table (required)")
	trinityCmd.Flags().StringVarP(&trinityOutput, "output", "o", "trinity_bhmr.hdf5", "output file")
	_ = trinityCmd.MarkFlagRequired("input")

	universemachineCmd.Flags().StringVar(&universemachineData, "data-dir", "universemachine", "directory holding (or receiving) the DR1 tables")
	universemachineCmd.Flags().StringVarP(&universemachineOutput, "output", "o", "universemachine.hdf5", "output file")

	generateCmd.AddCommand(behroozi2010Cmd)
	generateCmd.AddCommand(parametricCmd)
	generateCmd.AddCommand(trinityCmd)
	generateCmd.AddCommand(universemachineCmd)
}

// Halo mass grid and redshift binning of the reference Behroozi (2010)
// tabulation.
const (
	b10LogMassMin = 9.95
	b10LogMassMax = 15.05
	b10MassPoints = 251
	b10ZMax       = 4.0
	b10ZBins      = 40
)

func runBehroozi2010(cmd *cobra.Command, args []string) error {
	haloMasses := logspace(b10LogMassMin, b10LogMassMax, b10MassPoints)
	cosmology := relation.WMAP7()

	intervals := make([]relation.Interval, 0, b10ZBins)
	for i := 0; i < b10ZBins; i++ {
		zMin := b10ZMax * float64(i) / b10ZBins
		zMax := b10ZMax * float64(i+1) / b10ZBins
		center := (zMin + zMax) / 2

		logger.Debug("tabulating interval",
			zap.Int("interval", i+1),
			zap.Float64("zMin", zMin),
			zap.Float64("zMax", zMax))

		data, err := models.Calculate(models.Config{
			Form:          models.NewBehroozi2010(center),
			HaloMasses:    haloMasses,
			Redshift:      center,
			RedshiftWidth: zMax - zMin,
			Cosmology:     &cosmology,
		})
		if err != nil {
			return fmt.Errorf("interval %d: %w", i+1, err)
		}
		intervals = append(intervals, data.Intervals[0])
	}

	dataset := &relation.SHMR{
		Intervals:          intervals,
		Cosmology:          cosmology,
		HaloMassDefinition: "Bryan & Norman (1998)",
		Label:              "Behroozi2010",
		Reference:          "Behroozi et al. (2010)",
	}
	return saveAndVerifySHMR(dataset, behroozi2010Output)
}

func runTrinity(cmd *cobra.Command, args []string) error {
	logger.Info("loading TRINITY table", zap.String("input", trinityInput))
	data, err := trinity.Load(trinityInput)
	if err != nil {
		return err
	}

	if err := galacticus.SaveBHMR(data, trinityOutput); err != nil {
		return err
	}
	logger.Info("dataset written",
		zap.String("path", trinityOutput),
		zap.Int("intervals", data.NumIntervals()),
		zap.Int("points", data.TotalPoints()))
	return verify(trinityOutput)
}

func runUniverseMachine(cmd *cobra.Command, args []string) error {
	logger.Info("locating UniverseMachine data", zap.String("dataDir", universemachineData))
	smhmDir, err := universemachine.Download(cmd.Context(), universemachineData)
	if err != nil {
		return err
	}

	data, err := universemachine.Build(smhmDir)
	if err != nil {
		return err
	}
	return saveAndVerifySHMR(data, universemachineOutput)
}

func saveAndVerifySHMR(data *relation.SHMR, path string) error {
	if err := galacticus.SaveSHMR(data, path); err != nil {
		return err
	}
	logger.Info("dataset written",
		zap.String("path", path),
		zap.Int("intervals", data.NumIntervals()),
		zap.Int("points", data.TotalPoints()))
	return verify(path)
}

// verify re-validates a freshly written file and reports the outcome.
func verify(path string) error {
	report := galacticus.Validate(path)
	for _, w := range report.Warnings {
		logger.Warn("validation warning", zap.String("path", path), zap.String("warning", w))
	}
	if !report.Valid() {
		for _, e := range report.Errors {
			logger.Error("validation error", zap.String("path", path), zap.String("error", e))
		}
		return fmt.Errorf("%s: written file failed validation", path)
	}
	logger.Info("validation passed", zap.String("path", path))
	return nil
}

// logspace returns count points spaced evenly in log10 between 10^lo and
// 10^hi.
func logspace(lo, hi float64, count int) []float64 {
	out := make([]float64, count)
	floats.Span(out, lo, hi)
	for i, v := range out {
		out[i] = math.Pow(10, v)
	}
	return out
}
