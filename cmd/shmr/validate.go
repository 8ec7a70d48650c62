package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/galacticus-data/shmr-datasets/galacticus"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate dataset files against the container format",
	Long: `Validates each path against the Galacticus container format.
Directories are searched recursively for *.hdf5 files. Exits non-zero
when any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var validateJobs int

func init() {
	validateCmd.Flags().IntVar(&validateJobs, "jobs", 8, "maximum files validated concurrently")
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectDatasetFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .hdf5 files found")
	}

	logger.Debug("validating files",
		zap.Int("count", len(files)),
		zap.Int("jobs", validateJobs))

	var (
		mu      sync.Mutex
		reports = make([]*galacticus.Report, 0, len(files))
	)

	g := new(errgroup.Group)
	g.SetLimit(validateJobs)
	for _, file := range files {
		g.Go(func() error {
			report := galacticus.Validate(file)
			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	invalid := 0
	for _, report := range reports {
		printReport(cmd, report)
		if !report.Valid() {
			invalid++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d file(s) checked, %d invalid\n", len(reports), invalid)
	if invalid > 0 {
		return fmt.Errorf("%d file(s) failed validation", invalid)
	}
	return nil
}

func printReport(cmd *cobra.Command, report *galacticus.Report) {
	out := cmd.OutOrStdout()
	status := "OK"
	if !report.Valid() {
		status = "INVALID"
	}
	fmt.Fprintf(out, "%s: %s (%s)\n", status, report.Path, report.Kind)
	for _, e := range report.Errors {
		fmt.Fprintf(out, "  error: %s\n", e)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
}

// collectDatasetFiles expands the argument list: files pass through,
// directories contribute every *.hdf5 beneath them.
func collectDatasetFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".hdf5") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
