package cmd

import (
	"github.com/spf13/cobra"
)

// animeCmd represents the anime command
var animeCmd = &cobra.Command{
	Use:   "anime",
	Short: "Convert the anime dataset",
	Long: `Splits genre into a list, defaults a missing rating to 0.0 and a missing
type to "Unknown". All other columns are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runDataset(cmd.Context(), cmd.OutOrStdout(), "anime")
		return err
	},
}

func init() {
	rootCmd.AddCommand(animeCmd)
	addDatasetFlags(animeCmd)
}
