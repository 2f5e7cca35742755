package cmd

import (
	"fmt"

	"github.com/Another0Noob/mediadata/internal/converter/movies"
	"github.com/Another0Noob/mediadata/internal/country"
	"github.com/spf13/cobra"
)

var reportUnmapped bool

// moviesCmd represents the movies command
var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Convert the movie dataset",
	Long: `Strips stray trailing commas from every header and value and adds a
plotly_country field with the canonical country name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		res, err := runDataset(cmd.Context(), out, "movies")
		if err != nil {
			return err
		}
		if !reportUnmapped {
			return nil
		}

		unmapped := movies.Unmapped(res.Records)
		fmt.Fprintf(out, "%d unmapped country names.\n", len(unmapped))
		for _, name := range unmapped {
			if s, ok := country.Suggest(name); ok {
				fmt.Fprintf(out, "  %q (did you mean %q?)\n", name, s)
				continue
			}
			fmt.Fprintf(out, "  %q\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	addDatasetFlags(moviesCmd)

	moviesCmd.Flags().BoolVar(
		&reportUnmapped,
		"report-unmapped",
		false,
		"list country names the canonical table does not cover",
	)
}
