package cmd

import (
	"github.com/spf13/cobra"
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Convert the TV series dataset",
	Long: `Keeps TV rows only, renames the rating and vote columns to Rating and Votes
and parses the genre lists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runDataset(cmd.Context(), cmd.OutOrStdout(), "series")
		return err
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	addDatasetFlags(seriesCmd)
}
