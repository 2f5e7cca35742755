package cmd

import (
	"github.com/spf13/cobra"
)

// mangaCmd represents the manga command
var mangaCmd = &cobra.Command{
	Use:   "manga",
	Short: "Convert the manga dataset",
	Long: `Keeps manga_id, title, score, members, favorites, genres and theme (when
present), parses the genre and theme lists and writes missing values as null.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runDataset(cmd.Context(), cmd.OutOrStdout(), "manga")
		return err
	},
}

func init() {
	rootCmd.AddCommand(mangaCmd)
	addDatasetFlags(mangaCmd)
}
