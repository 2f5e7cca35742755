package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Another0Noob/mediadata/internal/config"
	"github.com/Another0Noob/mediadata/internal/converter"
	"github.com/Another0Noob/mediadata/internal/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	cfgFile string
	dataDir string
	verbose bool

	inputFile  string
	outputFile string
	encoding   string
)

var rootCmd = &cobra.Command{
	Use:   "mediadata",
	Short: "Convert media CSV datasets into the JSON the front end loads",
	Long: `mediadata converts the movie, anime, manga and series CSV datasets into
JSON arrays of cleaned records.

Run without a subcommand to convert every dataset, or name one:

  mediadata movies -i movies.csv -o movies_data.json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAll(cmd.Context(), cmd.OutOrStdout())
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		"",
		"path to config file",
	)
	rootCmd.PersistentFlags().StringVar(
		&dataDir,
		"data-dir",
		"",
		"directory dataset paths are relative to",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"print progress while converting",
	)
}

// addDatasetFlags registers the per-dataset path flags on a subcommand.
func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&inputFile,
		"input",
		"i",
		"",
		"path to input file",
	)
	cmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"path to output file",
	)
	cmd.Flags().StringVar(
		&encoding,
		"encoding",
		"",
		"input encoding (utf-8, latin1, windows-1252)",
	)
}

func loadConfig() (config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func runAll(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	batch := uuid.New()
	if verbose {
		fmt.Fprintf(out, "--- Batch %s ---\n", batch)
	}

	for _, name := range converter.Names() {
		conv, err := converter.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := convert(ctx, out, cfg, conv, config.Overrides{DataDir: dataDir}); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(out, "Batch %s finished: %d datasets.\n", batch, len(converter.Names()))
	}
	return nil
}

func runDataset(ctx context.Context, out io.Writer, name string) (*converter.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	conv, err := converter.Lookup(name)
	if err != nil {
		return nil, err
	}
	return convert(ctx, out, cfg, conv, config.Overrides{
		DataDir:  dataDir,
		Input:    inputFile,
		Output:   outputFile,
		Encoding: encoding,
	})
}

func convert(ctx context.Context, out io.Writer, cfg config.Config, conv converter.Converter, o config.Overrides) (*converter.Result, error) {
	ds := cfg.Resolve(conv.Name, conv.Input, conv.Output, o)

	if verbose {
		fmt.Fprintf(out, "--- Converting %s ---\n", conv.Name)
	}

	res, err := conv.Run(ctx, converter.Job{
		Input:    ds.Input,
		Output:   ds.Output,
		Encoding: ds.Encoding,
		Progress: progress(out),
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Converted %s -> %s (%d records).\n", res.Input, res.Output, len(res.Records))
	return res, nil
}

// progress prints at most one line per second in verbose mode.
func progress(out io.Writer) table.Progress {
	if !verbose {
		return nil
	}
	every := &rate.Sometimes{Interval: time.Second}
	return func(done, total int) {
		every.Do(func() {
			fmt.Fprintf(out, "Processed %d/%d rows.\n", done, total)
		})
	}
}
