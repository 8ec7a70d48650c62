package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/galacticus-data/shmr-datasets/galacticus"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a dataset file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := galacticus.Info(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), info.String())
		return nil
	},
}
